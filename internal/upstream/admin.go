package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Platform administration: tenants, users, admins, quota plans, audit log.
// Write payloads pass through untouched; the data API owns validation.

func (c *Client) Tenants(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/tenants", q, false)
}

func (c *Client) CreateTenant(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/api/tenants", body)
}

func (c *Client) UpdateTenant(ctx context.Context, id int64, body json.RawMessage) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/api/tenants/%d", id), body)
}

func (c *Client) ToggleTenant(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.patch(ctx, fmt.Sprintf("/api/tenants/%d/toggle", id), nil)
}

func (c *Client) RechargeTenant(ctx context.Context, id int64, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/api/tenants/%d/recharge", id), body)
}

func (c *Client) AssignTenantPlan(ctx context.Context, tenantID, planID int64) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/api/tenants/%d/assign-plan", tenantID), map[string]any{"plan_id": planID})
}

func (c *Client) Users(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/users", withDefault(q, "limit", "50"), true)
}

func (c *Client) Admins(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/admins", q, false)
}

func (c *Client) QuotaPlans(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/quota/plans", q, false)
}

func (c *Client) AuditLogs(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/audit-logs", withDefault(q, "limit", "50"), true)
}
