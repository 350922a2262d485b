package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/service"
	"github.com/lybfish/ironbull/internal/upstream"
)

// SessionHandler owns the operator's login lifecycle: it is the only place
// that writes the credential store, arms a fresh teardown generation, and
// resets the navigator so the next navigation materializes routes anew.
type SessionHandler struct {
	upstream *upstream.Client
	creds    *service.CredentialStore
	scope    *service.ScopeHolder
	nav      *service.Navigator
	log      zerolog.Logger
}

func NewSessionHandler(up *upstream.Client, creds *service.CredentialStore, scope *service.ScopeHolder, nav *service.Navigator, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{upstream: up, creds: creds, scope: scope, nav: nav, log: log}
}

type loginRequest struct {
	TenantID int64  `json:"tenant_id" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Identity      *domain.Identity `json:"identity,omitempty"`
	Scope         domain.Scope     `json:"scope"`
	Routes        string           `json:"routes"`
	Home          string           `json:"home,omitempty"`
}

// Login authenticates against the data API and establishes the local
// session.
//
// @Summary      Operator login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Tenant, email, password, remember"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	res, err := h.upstream.Login(ctx, req.TenantID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if err := h.creds.SetToken(ctx, res.Token, req.Remember); err != nil {
		return err
	}

	// Best-effort identity prefill from the login response and unverified
	// token claims; the materializer replaces it with the real user info.
	id := &domain.Identity{Email: res.Email, UserID: res.UserID, TenantID: res.TenantID}
	if tid, uid := upstream.IdentityHints(res.Token); tid > 0 {
		id.TenantID, id.UserID = tid, uid
	}
	id.Normalize()
	h.creds.SetIdentity(ctx, id)

	h.scope.Set(res.TenantID, 0)
	h.upstream.ResetSession()
	h.nav.Reset()

	h.log.Info().
		Int64("tenant_id", res.TenantID).
		Int64("user_id", res.UserID).
		Msg("operator logged in")

	return c.JSON(http.StatusOK, h.status(c))
}

// Logout destroys the session and tears down the materialized routes.
//
// @Summary      Operator logout
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	h.creds.Clear(ctx)
	h.nav.Reset()
	h.upstream.ResetSession()
	return c.NoContent(http.StatusNoContent)
}

// Status reports the current session state.
//
// @Summary      Session status
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status(c))
}

func (h *SessionHandler) status(c echo.Context) sessionResponse {
	ctx := c.Request().Context()
	resp := sessionResponse{
		Authenticated: h.creds.Token(ctx) != "",
		Scope:         h.scope.Current(),
		Routes:        h.nav.State().String(),
	}
	if resp.Authenticated {
		resp.Identity = h.creds.Identity(ctx)
	}
	if rt := h.nav.Routes(); rt != nil {
		resp.Home = rt.Home
	}
	return resp
}

type scopeRequest struct {
	TenantID  int64 `json:"tenant_id" validate:"required,gt=0"`
	AccountID int64 `json:"account_id" validate:"gte=0"`
}

// SetScope switches the active tenant/account. Takes effect on the next
// outgoing data request; requests already in flight keep the scope they
// captured at dispatch.
//
// @Summary      Select tenant/account scope
// @Accept       json
// @Success      200  {object}  domain.Scope
// @Router       /api/session/scope [put]
func (h *SessionHandler) SetScope(c echo.Context) error {
	var req scopeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.scope.Set(req.TenantID, req.AccountID)
	return c.JSON(http.StatusOK, h.scope.Current())
}

type passwordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword forwards a password change upstream.
//
// @Summary      Change the operator's password
// @Accept       json
// @Success      204
// @Router       /api/session/password [post]
func (h *SessionHandler) ChangePassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.upstream.ChangePassword(c.Request().Context(), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
