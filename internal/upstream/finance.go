package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Finance reads and the withdrawal review action, tenant-scoped.

func (c *Client) Withdrawals(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/withdrawals", withDefault(q, "limit", "50"), true)
}

func (c *Client) ReviewWithdrawal(ctx context.Context, id int64, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/api/withdrawals/%d/review", id), body)
}

func (c *Client) PointcardLogs(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/pointcard/logs", withDefault(q, "limit", "50"), true)
}

func (c *Client) PointcardRewards(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/pointcard-rewards", withDefault(q, "limit", "50"), true)
}

func (c *Client) ProfitPools(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/api/profit-pools", q, true)
}
