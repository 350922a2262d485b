package service

import (
	"sync"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// ScopeHolder is the process-wide tenant/account scope. Both fields update
// together under one lock, and reads hand out value snapshots, so a scope
// change takes effect on the next dispatched request only — a request that
// already merged its snapshot keeps the values it captured.
type ScopeHolder struct {
	mu  sync.RWMutex
	cur domain.Scope
}

// NewScopeHolder seeds the scope before login so unauthenticated preview
// and development calls still carry a tenant.
func NewScopeHolder(initial domain.Scope) *ScopeHolder {
	return &ScopeHolder{cur: initial}
}

// Set replaces the active scope atomically.
func (h *ScopeHolder) Set(tenantID, accountID int64) {
	h.mu.Lock()
	h.cur = domain.Scope{TenantID: tenantID, AccountID: accountID}
	h.mu.Unlock()
}

// Current returns a read-only snapshot of the active scope.
func (h *ScopeHolder) Current() domain.Scope {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}
