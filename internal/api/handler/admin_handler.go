package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/upstream"
)

// AdminHandler exposes the platform administration actions: tenant CRUD,
// plan assignment, withdrawal review. Bodies pass through to the data API
// unchanged; the gateway contributes authentication and scope, not schema.
type AdminHandler struct {
	upstream *upstream.Client
	log      zerolog.Logger
}

func NewAdminHandler(up *upstream.Client, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{upstream: up, log: log}
}

// @Summary      Create a tenant
// @Accept       json
// @Router       /api/tenants [post]
func (h *AdminHandler) CreateTenant(c echo.Context) error {
	body, err := rawBody(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.CreateTenant(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, res)
}

// @Summary      Update a tenant
// @Accept       json
// @Router       /api/tenants/{id} [put]
func (h *AdminHandler) UpdateTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.UpdateTenant(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}

// @Summary      Enable or disable a tenant
// @Router       /api/tenants/{id}/toggle [post]
func (h *AdminHandler) ToggleTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.ToggleTenant(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}

// @Summary      Recharge a tenant's balance
// @Accept       json
// @Router       /api/tenants/{id}/recharge [post]
func (h *AdminHandler) RechargeTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.RechargeTenant(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}

type assignPlanRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,gt=0"`
}

// @Summary      Assign a quota plan to a tenant
// @Accept       json
// @Router       /api/tenants/{id}/plan [post]
func (h *AdminHandler) AssignPlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req assignPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.upstream.AssignTenantPlan(c.Request().Context(), id, req.PlanID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}

// @Summary      Bind a strategy to a tenant
// @Accept       json
// @Router       /api/tenants/{id}/strategies [post]
func (h *AdminHandler) CreateTenantStrategy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.CreateTenantStrategy(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, res)
}

// @Summary      Approve or reject a withdrawal
// @Accept       json
// @Router       /api/withdrawals/{id}/review [post]
func (h *AdminHandler) ReviewWithdrawal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}
	res, err := h.upstream.ReviewWithdrawal(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// rawBody reads the request body as a passthrough JSON document.
func rawBody(c echo.Context) (json.RawMessage, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return raw, nil
}
