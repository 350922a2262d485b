// Package metrics defines and registers all custom Prometheus metrics for
// the IronBull console gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Upstream pipeline metrics ─────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests the pipeline sent to the data API.
// Labels:
//   - method: HTTP method
//   - status_class: "2xx", "3xx", "4xx", "5xx", or "error" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the upstream data API.",
	},
	[]string{"method", "status_class"},
)

// UpstreamRequestDuration observes upstream round-trip latency in seconds.
var UpstreamRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream data API requests.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// UnauthorizedTeardownsTotal counts 401-triggered session teardowns. With
// the exactly-once guarantee this increments once per expired session no
// matter how many requests were in flight when it expired.
var UnauthorizedTeardownsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unauthorized_teardowns_total",
		Help:      "Total number of session teardowns triggered by upstream 401 responses.",
	},
)

// MaterializationFailuresTotal counts identity fetches that failed during
// route materialization and fell back to the permissive identity.
var MaterializationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materialization_failures_total",
		Help:      "Total number of route materializations that fell back to the permissive identity.",
	},
)
