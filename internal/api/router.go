package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/api/handler"
	"github.com/lybfish/ironbull/internal/api/middleware"
	"github.com/lybfish/ironbull/internal/core/service"
)

// Dependencies collects everything the router wires together.
type Dependencies struct {
	Sessions  *handler.SessionHandler
	Console   *handler.ConsoleHandler
	Admin     *handler.AdminHandler
	Readiness *handler.ReadinessHandler
	Navigator *service.Navigator
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Session lifecycle ---
	e.POST("/api/session", deps.Sessions.Login)
	e.DELETE("/api/session", deps.Sessions.Logout)
	e.GET("/api/session", deps.Sessions.Status)
	e.PUT("/api/session/scope", deps.Sessions.SetScope)
	e.POST("/api/session/password", deps.Sessions.ChangePassword)

	// --- Administration actions (guarded: upstream rejects anonymous calls) ---
	e.POST("/api/tenants", deps.Admin.CreateTenant)
	e.PUT("/api/tenants/:id", deps.Admin.UpdateTenant)
	e.POST("/api/tenants/:id/toggle", deps.Admin.ToggleTenant)
	e.POST("/api/tenants/:id/recharge", deps.Admin.RechargeTenant)
	e.POST("/api/tenants/:id/plan", deps.Admin.AssignPlan)
	e.POST("/api/tenants/:id/strategies", deps.Admin.CreateTenantStrategy)
	e.POST("/api/withdrawals/:id/review", deps.Admin.ReviewWithdrawal)

	// --- Observability (no auth required) ---
	health := handler.NewHealthHandler()
	e.GET("/health", health.Liveness)                 // liveness  – is the process alive?
	e.GET("/health/ready", deps.Readiness.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Console navigation ---
	// Catch-all: every navigable path runs through the guard first.
	e.GET("/*", deps.Console.Serve, middleware.Guard(deps.Navigator))

	return e
}
