package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/service"
	"github.com/lybfish/ironbull/internal/infrastructure/vault"
	"github.com/lybfish/ironbull/internal/upstream"
)

type sessionFixture struct {
	handler *SessionHandler
	echo    *echo.Echo
	durable *vault.MemoryVault
	session *vault.MemoryVault
	creds   *service.CredentialStore
	scope   *service.ScopeHolder
	nav     *service.Navigator
}

// newSessionFixture wires the handler against a fake data API that accepts
// tenant 3 / op@ironbull.io / secret and serves a matching user record.
func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-1", "tenant_id": 3, "user_id": 12, "email": "op@ironbull.io",
			})
		case "/api/auth/me":
			json.NewEncoder(w).Encode(map[string]any{
				"username": "ops", "user_id": 12, "tenant_id": 3,
				"roles": []string{"admin"}, "authorities": []string{"*"},
			})
		case "/api/auth/change-password":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["old_password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(api.Close)

	durable := vault.NewMemoryVault()
	session := vault.NewMemoryVault()
	creds := service.NewCredentialStore(durable, session, zerolog.Nop())
	scope := service.NewScopeHolder(domain.Scope{TenantID: 1})
	client := upstream.New(upstream.Config{BaseURL: api.URL}, creds, scope, zerolog.Nop())
	nav := service.NewNavigator(domain.ConsoleMenu, "", client, creds, zerolog.Nop())
	client.OnTeardown(nav.Reset)

	e := echo.New()
	e.Validator = NewValidator()

	return &sessionFixture{
		handler: NewSessionHandler(client, creds, scope, nav, zerolog.Nop()),
		echo:    e,
		durable: durable,
		session: session,
		creds:   creds,
		scope:   scope,
		nav:     nav,
	}
}

func (fx *sessionFixture) request(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, fx.echo.NewContext(req, rec)
}

func TestLoginEstablishesSession(t *testing.T) {
	fx := newSessionFixture(t)
	rec, c := fx.request(t, http.MethodPost, "/api/session",
		`{"tenant_id":3,"email":"op@ironbull.io","password":"secret"}`)

	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	ctx := context.Background()
	if tok := fx.creds.Token(ctx); tok != "tok-1" {
		t.Fatalf("stored token = %q", tok)
	}
	// Without remember the token lives in the session tier only.
	if tok, _ := fx.durable.ReadToken(ctx); tok != "" {
		t.Fatalf("token leaked into the durable tier: %q", tok)
	}
	if got := fx.scope.Current().TenantID; got != 3 {
		t.Fatalf("scope tenant = %d, want 3", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["authenticated"] != true {
		t.Fatalf("response = %v", resp)
	}
}

func TestLoginRememberUsesDurableTier(t *testing.T) {
	fx := newSessionFixture(t)
	_, c := fx.request(t, http.MethodPost, "/api/session",
		`{"tenant_id":3,"email":"op@ironbull.io","password":"secret","remember":true}`)

	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx := context.Background()
	if tok, _ := fx.durable.ReadToken(ctx); tok != "tok-1" {
		t.Fatalf("durable token = %q", tok)
	}
	if tok, _ := fx.session.ReadToken(ctx); tok != "" {
		t.Fatalf("session tier also holds the token: %q", tok)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	fx := newSessionFixture(t)
	_, c := fx.request(t, http.MethodPost, "/api/session",
		`{"tenant_id":3,"email":"op@ironbull.io","password":"wrong"}`)

	err := fx.handler.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if tok := fx.creds.Token(context.Background()); tok != "" {
		t.Fatalf("failed login stored a token: %q", tok)
	}
}

func TestLoginValidatesPayload(t *testing.T) {
	fx := newSessionFixture(t)
	for _, body := range []string{
		`{"email":"op@ironbull.io","password":"secret"}`,
		`{"tenant_id":3,"email":"not-an-email","password":"secret"}`,
		`{"tenant_id":3,"email":"op@ironbull.io"}`,
	} {
		_, c := fx.request(t, http.MethodPost, "/api/session", body)
		err := fx.handler.Login(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: err = %v, want 400", body, err)
		}
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	fx := newSessionFixture(t)
	_, c := fx.request(t, http.MethodPost, "/api/session",
		`{"tenant_id":3,"email":"op@ironbull.io","password":"secret"}`)
	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if fx.nav.Materialize(context.Background()) == nil {
		t.Fatal("materialize")
	}

	rec, c := fx.request(t, http.MethodDelete, "/api/session", "")
	if err := fx.handler.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if tok := fx.creds.Token(context.Background()); tok != "" {
		t.Fatalf("token survived logout: %q", tok)
	}
	if fx.nav.Routes() != nil {
		t.Fatal("routes survived logout")
	}
}

func TestSetScopeTakesEffect(t *testing.T) {
	fx := newSessionFixture(t)
	rec, c := fx.request(t, http.MethodPut, "/api/session/scope",
		`{"tenant_id":7,"account_id":2}`)

	if err := fx.handler.SetScope(c); err != nil {
		t.Fatalf("set scope: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := fx.scope.Current(); got.TenantID != 7 || got.AccountID != 2 {
		t.Fatalf("scope = %+v", got)
	}
}

func TestSetScopeRejectsMissingTenant(t *testing.T) {
	fx := newSessionFixture(t)
	_, c := fx.request(t, http.MethodPut, "/api/session/scope", `{"account_id":2}`)

	err := fx.handler.SetScope(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestChangePasswordValidatesLength(t *testing.T) {
	fx := newSessionFixture(t)
	_, c := fx.request(t, http.MethodPost, "/api/session/password",
		`{"old_password":"secret","new_password":"short"}`)

	err := fx.handler.ChangePassword(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestChangePasswordForwardsUpstream(t *testing.T) {
	fx := newSessionFixture(t)
	rec, c := fx.request(t, http.MethodPost, "/api/session/password",
		`{"old_password":"secret","new_password":"longenough"}`)

	if err := fx.handler.ChangePassword(c); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}
