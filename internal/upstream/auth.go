package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// LoginResult is the data API's answer to a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	TenantID int64  `json:"tenant_id"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
}

// Login authenticates the operator against the data API. The token comes
// back opaque; the gateway stores and forwards it without interpreting it
// beyond the best-effort claim hints below.
func (c *Client) Login(ctx context.Context, tenantID int64, email, password string) (*LoginResult, error) {
	raw, err := c.post(ctx, "/api/auth/login", map[string]any{
		"tenant_id": tenantID,
		"email":     strings.TrimSpace(email),
		"password":  password,
	})
	if err != nil {
		return nil, err
	}
	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	return &res, nil
}

// ChangePassword forwards a password change for the logged-in operator.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.post(ctx, "/api/auth/change-password", map[string]any{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	return err
}

// userInfo tolerates the two shapes the data API serves user records in:
// bare, or wrapped in a {success, data} envelope.
type userInfo struct {
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Email       string   `json:"email"`
	UserID      int64    `json:"user_id"`
	AdminID     int64    `json:"admin_id"`
	TenantID    int64    `json:"tenant_id"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
	HomePath    string   `json:"home_path"`
}

type meEnvelope struct {
	Success bool      `json:"success"`
	Data    *userInfo `json:"data"`
}

// FetchIdentity resolves the logged-in operator from the user-info
// endpoint. Satisfies ports.IdentityClient for the navigator.
func (c *Client) FetchIdentity(ctx context.Context) (*domain.Identity, error) {
	raw, err := c.get(ctx, "/api/auth/me", nil, false)
	if err != nil {
		return nil, err
	}

	var env meEnvelope
	info := &userInfo{}
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		info = env.Data
	} else if err := json.Unmarshal(raw, info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	id := &domain.Identity{
		DisplayName: firstNonEmpty(info.Nickname, info.Username, info.Email),
		UserID:      info.UserID,
		TenantID:    info.TenantID,
		Email:       info.Email,
		Roles:       info.Roles,
		Authorities: info.Authorities,
		HomePath:    info.HomePath,
	}
	if id.UserID == 0 {
		id.UserID = info.AdminID
	}
	id.Normalize()
	return id, nil
}

// IdentityHints extracts tenant_id and user_id claims from the token
// without verifying it. Display-only: the signature belongs to the data
// API, and every proxied call is still authorized upstream.
func IdentityHints(token string) (tenantID, userID int64) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, 0
	}
	return claimInt64(claims, "tenant_id"), claimInt64(claims, "user_id")
}

func claimInt64(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
