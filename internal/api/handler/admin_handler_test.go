package handler

import (
	"io"
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

type adminFixture struct {
	handler *AdminHandler
	echo    *echo.Echo
	gotPath string
	gotBody string
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	fx := &adminFixture{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fx.gotPath = r.Method + " " + r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		fx.gotBody = string(raw)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(api.Close)

	creds := service.NewCredentialStore(vault.NewMemoryVault(), vault.NewMemoryVault(), zerolog.Nop())
	scope := service.NewScopeHolder(domain.Scope{TenantID: 1})
	client := upstream.New(upstream.Config{BaseURL: api.URL}, creds, scope, zerolog.Nop())

	fx.handler = NewAdminHandler(client, zerolog.Nop())
	fx.echo = echo.New()
	fx.echo.Validator = NewValidator()
	return fx
}

func (fx *adminFixture) invoke(t *testing.T, method, target, body string, id string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if err := fn(c); err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return rec
}

func TestCreateTenantPassesBodyThrough(t *testing.T) {
	fx := newAdminFixture(t)
	rec := fx.invoke(t, http.MethodPost, "/api/tenants", `{"name":"acme"}`, "", fx.handler.CreateTenant)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if fx.gotPath != "POST /api/tenants" {
		t.Fatalf("upstream saw %q", fx.gotPath)
	}
	if fx.gotBody != `{"name":"acme"}` {
		t.Fatalf("upstream body = %q", fx.gotBody)
	}
}

func TestToggleTenantUsesPathID(t *testing.T) {
	fx := newAdminFixture(t)
	fx.invoke(t, http.MethodPost, "/api/tenants/7/toggle", "", "7", fx.handler.ToggleTenant)

	if fx.gotPath != "PATCH /api/tenants/7/toggle" {
		t.Fatalf("upstream saw %q", fx.gotPath)
	}
}

func TestAssignPlanValidates(t *testing.T) {
	fx := newAdminFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tenants/7/plan", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := fx.handler.AssignPlan(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestReviewWithdrawalRejectsBadID(t *testing.T) {
	fx := newAdminFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/withdrawals/x/review", strings.NewReader(`{"approve":true}`))
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	err := fx.handler.ReviewWithdrawal(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestRawBodyRejectsMalformedJSON(t *testing.T) {
	fx := newAdminFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tenants", strings.NewReader(`{broken`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)

	err := fx.handler.CreateTenant(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}
