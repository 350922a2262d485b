package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/ports"
)

// CredentialStore owns the operator's session token and cached identity
// across two storage tiers: a durable vault that survives restarts and a
// session-scoped vault that dies with the process. "Remember me" decides
// which tier the token lands in; the identity cache always lives in the
// durable tier, mirroring the token lifecycle.
//
// The store is the only component allowed to mutate the session. The
// request pipeline and the navigator read it, never write it.
type CredentialStore struct {
	durable ports.TokenVault
	session ports.TokenVault
	log     zerolog.Logger
}

func NewCredentialStore(durable, session ports.TokenVault, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{durable: durable, session: session, log: log}
}

// Token returns the current session token, or "" when logged out.
// The durable tier wins when both hold a value. Pure read.
func (s *CredentialStore) Token(ctx context.Context) string {
	if tok, err := s.durable.ReadToken(ctx); err != nil {
		s.log.Warn().Err(err).Msg("durable vault read failed")
	} else if tok != "" {
		return tok
	}
	tok, err := s.session.ReadToken(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session vault read failed")
		return ""
	}
	return tok
}

// SetToken clears both tiers, then writes the token to the durable tier
// when remember is set, otherwise to the session tier. An empty token is
// equivalent to Clear.
func (s *CredentialStore) SetToken(ctx context.Context, token string, remember bool) error {
	s.Clear(ctx)
	if token == "" {
		return nil
	}
	if remember {
		return s.durable.WriteToken(ctx, token)
	}
	return s.session.WriteToken(ctx, token)
}

// Clear removes the token and cached identity from both tiers. Idempotent:
// clearing an already-empty store is a no-op, and storage failures are
// logged rather than surfaced — teardown must never fail.
func (s *CredentialStore) Clear(ctx context.Context) {
	for _, v := range []ports.TokenVault{s.durable, s.session} {
		if err := v.DeleteToken(ctx); err != nil {
			s.log.Warn().Err(err).Msg("token delete failed")
		}
		if err := v.DeleteIdentity(ctx); err != nil {
			s.log.Warn().Err(err).Msg("identity delete failed")
		}
	}
}

// Identity returns the cached operator identity, or nil when absent.
// Corrupt cached data reads as absent.
func (s *CredentialStore) Identity(ctx context.Context) *domain.Identity {
	id, err := s.durable.ReadIdentity(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity read failed")
		return nil
	}
	return id
}

// SetIdentity caches the identity; nil removes the cache entry.
func (s *CredentialStore) SetIdentity(ctx context.Context, id *domain.Identity) {
	var err error
	if id == nil {
		err = s.durable.DeleteIdentity(ctx)
	} else {
		err = s.durable.WriteIdentity(ctx, id)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("identity cache write failed")
	}
}
