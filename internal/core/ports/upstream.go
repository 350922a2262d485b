package ports

import (
	"context"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// IdentityClient resolves the logged-in operator from the data API.
// Implemented by the upstream request pipeline; stubbed in tests.
type IdentityClient interface {
	// FetchIdentity calls the user-info endpoint for the current session.
	FetchIdentity(ctx context.Context) (*domain.Identity, error)
}
