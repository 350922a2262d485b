package domain

import (
	"net/url"
	"strconv"
)

// Scope is the (tenant, account) pair implicitly attached to every
// tenant-scoped data query. AccountID 0 means "no account selected" —
// account ids issued by the platform start at 1.
type Scope struct {
	TenantID  int64 `json:"tenant_id"`
	AccountID int64 `json:"account_id,omitempty"`
}

// Merge folds the scope into q without overwriting values the caller set
// explicitly: request-specific parameters win over the ambient scope.
func (s Scope) Merge(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if !q.Has("tenant_id") && s.TenantID > 0 {
		q.Set("tenant_id", strconv.FormatInt(s.TenantID, 10))
	}
	if !q.Has("account_id") && s.AccountID > 0 {
		q.Set("account_id", strconv.FormatInt(s.AccountID, 10))
	}
	return q
}
