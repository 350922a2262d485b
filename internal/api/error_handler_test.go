package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/boom", func(echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestErrorTaxonomyStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrNoSession, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrTimeout, http.StatusGatewayTimeout},
		{domain.ErrRouteNotFound, http.StatusNotFound},
		{errors.New("wat"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := serveError(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
	}
}

func TestUpstreamErrorPassesThrough(t *testing.T) {
	rec := serveError(t, &domain.UpstreamError{Status: 422, Body: `{"error":"bad"}`})
	if rec.Code != 422 {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !containsAll(body, `"upstream_status":422`, `bad`) {
		t.Fatalf("body = %s", body)
	}
}

func TestEchoHTTPErrorKeepsItsCode(t *testing.T) {
	rec := serveError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := serveError(t, errors.New("password hash mismatch for user 12"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); containsAll(body, "password") {
		t.Fatalf("internal detail leaked: %s", body)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
