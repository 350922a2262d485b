package upstream

import (
	"context"
	"encoding/json"
	"net/url"
)

// Trading data reads. All tenant-scoped: the ambient scope is merged into
// the query, with caller-supplied parameters winning. Payloads pass through
// as raw JSON — the gateway does not alter the data API's schemas.

func (c *Client) Orders(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/orders", withDefault(q, "limit", "50"), true)
}

func (c *Client) Fills(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/fills", withDefault(q, "limit", "50"), true)
}

func (c *Client) Positions(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/positions", withDefault(q, "limit", "100"), true)
}

func (c *Client) Accounts(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/accounts", withDefault(q, "limit", "50"), true)
}

func (c *Client) Transactions(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/transactions", withDefault(q, "limit", "50"), true)
}

func (c *Client) PendingOrders(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/pending-orders", q, true)
}

func (c *Client) ExchangeAccounts(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/exchange-accounts", q, true)
}
