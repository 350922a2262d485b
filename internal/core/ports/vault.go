package ports

import (
	"context"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// TokenVault is one storage tier for the session token and cached identity.
// Implementations read defensively: a missing or corrupt value is reported
// as absent ("" / nil), never as an error the caller must recover from.
type TokenVault interface {
	// ReadToken returns the stored token, or "" when absent.
	ReadToken(ctx context.Context) (string, error)
	// WriteToken stores the token, replacing any previous value.
	WriteToken(ctx context.Context, token string) error
	// DeleteToken removes the token. Deleting an absent token is a no-op.
	DeleteToken(ctx context.Context) error

	// ReadIdentity returns the cached identity, or nil when absent or
	// unparseable.
	ReadIdentity(ctx context.Context) (*domain.Identity, error)
	WriteIdentity(ctx context.Context, id *domain.Identity) error
	DeleteIdentity(ctx context.Context) error
}
