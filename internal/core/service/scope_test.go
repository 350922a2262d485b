package service

import (
	"sync"
	"testing"

	"github.com/lybfish/ironbull/internal/core/domain"
)

func TestScopeSnapshotIsStable(t *testing.T) {
	h := NewScopeHolder(domain.Scope{TenantID: 1, AccountID: 1})

	snap := h.Current()
	h.Set(5, 9)

	if snap.TenantID != 1 || snap.AccountID != 1 {
		t.Fatalf("snapshot mutated: %+v", snap)
	}
	cur := h.Current()
	if cur.TenantID != 5 || cur.AccountID != 9 {
		t.Fatalf("current = %+v", cur)
	}
}

func TestScopePairUpdatesAtomically(t *testing.T) {
	h := NewScopeHolder(domain.Scope{TenantID: 1, AccountID: 1})

	// Writers flip between two consistent pairs; readers must never
	// observe a torn mix.
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				h.Set(1, 1)
			} else {
				h.Set(2, 2)
			}
		}
	}()

	for i := 0; i < 10000; i++ {
		s := h.Current()
		if s.TenantID != s.AccountID {
			t.Fatalf("torn scope read: %+v", s)
		}
	}
	close(stop)
	wg.Wait()
}
