package upstream

import (
	"context"
	"encoding/json"
	"net/url"
)

// Monitoring reads: signal flow, node fleet, sync state.

func (c *Client) SignalMonitorStatus(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/signal-monitor/status", nil, false)
}

func (c *Client) SignalEvents(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/signal-events", withDefault(q, "limit", "50"), true)
}

func (c *Client) Nodes(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/nodes", q, false)
}

func (c *Client) SyncStatus(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/sync", q, true)
}
