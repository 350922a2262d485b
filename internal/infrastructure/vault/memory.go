package vault

import (
	"context"
	"sync"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// MemoryVault is the session-scoped tier: its contents die with the
// process, which is exactly the contract for tokens stored without
// "remember me".
type MemoryVault struct {
	mu       sync.RWMutex
	token    string
	identity *domain.Identity
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{}
}

func (v *MemoryVault) ReadToken(context.Context) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.token, nil
}

func (v *MemoryVault) WriteToken(_ context.Context, token string) error {
	v.mu.Lock()
	v.token = token
	v.mu.Unlock()
	return nil
}

func (v *MemoryVault) DeleteToken(context.Context) error {
	v.mu.Lock()
	v.token = ""
	v.mu.Unlock()
	return nil
}

func (v *MemoryVault) ReadIdentity(context.Context) (*domain.Identity, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.identity == nil {
		return nil, nil
	}
	clone := *v.identity
	return &clone, nil
}

func (v *MemoryVault) WriteIdentity(_ context.Context, id *domain.Identity) error {
	clone := *id
	v.mu.Lock()
	v.identity = &clone
	v.mu.Unlock()
	return nil
}

func (v *MemoryVault) DeleteIdentity(context.Context) error {
	v.mu.Lock()
	v.identity = nil
	v.mu.Unlock()
	return nil
}
