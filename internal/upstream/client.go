// Package upstream is the request pipeline between the console gateway and
// the IronBull data API. Every call attaches the operator's bearer token
// when one is stored, merges the ambient tenant/account scope into
// tenant-scoped queries, applies the configured request timeout, and maps
// authorization failures into the console's error taxonomy.
//
// 401 handling is race-safe: a console page load fires several data calls
// at once, and when the session has expired they all come back 401. The
// pipeline tears the session down exactly once per login generation; the
// remaining 401s are harmless no-ops.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/service"
	"github.com/lybfish/ironbull/internal/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an upstream error body is carried into an
// UpstreamError.
const maxErrorBody = 4 << 10

// Config holds the pipeline settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client wraps an http.Client with the console's interception rules.
type Client struct {
	http    *http.Client
	baseURL string
	creds   *service.CredentialStore
	scope   *service.ScopeHolder
	log     zerolog.Logger

	// gen carries the teardown guard for the current login session.
	// ResetSession installs a fresh generation on login/logout so a stale
	// 401 from a previous session cannot consume the new session's guard.
	gen atomic.Pointer[generation]

	onTeardown atomic.Pointer[func()]
}

type generation struct {
	once sync.Once
}

func New(cfg Config, creds *service.CredentialStore, scope *service.ScopeHolder, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds:   creds,
		scope:   scope,
		log:     log,
	}
	c.gen.Store(&generation{})
	return c
}

// OnTeardown registers the hook invoked exactly once when a 401 tears the
// session down. The navigator uses it to drop the materialized routes.
func (c *Client) OnTeardown(fn func()) {
	c.onTeardown.Store(&fn)
}

// ResetSession arms a fresh teardown guard. Call after every login and
// logout.
func (c *Client) ResetSession() {
	c.gen.Store(&generation{})
}

// teardown clears the credential store and fires the teardown hook, at most
// once per login generation regardless of how many 401s race here.
func (c *Client) teardown(ctx context.Context) {
	g := c.gen.Load()
	g.once.Do(func() {
		metrics.UnauthorizedTeardownsTotal.Inc()
		c.log.Warn().Msg("session expired upstream, tearing down")
		c.creds.Clear(ctx)
		if fn := c.onTeardown.Load(); fn != nil {
			(*fn)()
		}
	})
}

func (c *Client) get(ctx context.Context, path string, q url.Values, scoped bool) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, q, nil, scoped)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, false)
}

func (c *Client) put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, false)
}

func (c *Client) patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body, false)
}

// do sends one request through the pipeline. The scope snapshot is taken
// here, at dispatch time: a scope change after do returns the request to
// the transport does not touch requests already in flight.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, scoped bool) (json.RawMessage, error) {
	if scoped {
		q = c.scope.Current().Merge(q)
	}

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		if isTimeout(err) {
			return nil, domain.ErrTimeout
		}
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, statusClass(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.teardown(ctx)
		return nil, domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrForbidden
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	return raw, nil
}

// isTimeout recognizes both the client-level timeout and a deadline carried
// in from the caller's context.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}

func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// withDefault sets a query parameter when the caller did not.
func withDefault(q url.Values, key, value string) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if !q.Has(key) {
		q.Set(key, value)
	}
	return q
}
