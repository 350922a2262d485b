package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Strategy catalog and bindings.

func (c *Client) Strategies(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/strategies", q, false)
}

func (c *Client) StrategyBindings(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/strategy-bindings", q, true)
}

func (c *Client) TenantStrategies(ctx context.Context, tenantID int64, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/api/tenants/%d/tenant-strategies", tenantID), q, false)
}

func (c *Client) CreateTenantStrategy(ctx context.Context, tenantID int64, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/api/tenants/%d/tenant-strategies", tenantID), body)
}
