package upstream

import (
	"context"
	"encoding/json"
	"net/url"
)

// Analytics reads, tenant-scoped.

func (c *Client) Performance(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/analytics/performance", q, true)
}

func (c *Client) Risk(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/analytics/risk", q, true)
}

func (c *Client) Statistics(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/analytics/statistics", withDefault(q, "limit", "20"), true)
}
