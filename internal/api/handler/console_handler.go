package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/service"
	"github.com/lybfish/ironbull/internal/upstream"
)

// ConsoleHandler serves the console's navigable routes from the active
// route table. Each view resolves to one upstream dataset fetched through
// the pipeline, so every console page load exercises bearer attachment and
// scope merging the way the SPA's widgets did.
type ConsoleHandler struct {
	nav      *service.Navigator
	upstream *upstream.Client
	scope    *service.ScopeHolder
	log      zerolog.Logger
}

func NewConsoleHandler(nav *service.Navigator, up *upstream.Client, scope *service.ScopeHolder, log zerolog.Logger) *ConsoleHandler {
	return &ConsoleHandler{nav: nav, upstream: up, scope: scope, log: log}
}

type consoleView struct {
	Path  string          `json:"path"`
	Title string          `json:"title"`
	Icon  string          `json:"icon,omitempty"`
	View  string          `json:"view,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Serve renders one console route. The guard middleware has already run:
// reaching here means the navigation is allowed and, for authenticated
// targets, the route table is materialized.
func (h *ConsoleHandler) Serve(c echo.Context) error {
	path := c.Request().URL.Path

	if domain.PublicPath(path) {
		return c.JSON(http.StatusOK, consoleView{Path: path, Title: "Sign In", View: "login"})
	}

	rt := h.nav.Routes()
	if rt == nil {
		return domain.ErrNoSession
	}
	if path == "/" {
		return c.Redirect(http.StatusFound, rt.Home)
	}

	entry, ok := rt.Lookup(path)
	if !ok {
		return domain.ErrRouteNotFound
	}

	view := consoleView{Path: entry.Path, Title: entry.Title, Icon: entry.Icon, View: entry.View}
	if fetch := h.dataset(entry.View); fetch != nil {
		data, err := fetch(c.Request().Context(), c.QueryParams())
		if err != nil {
			return err
		}
		view.Data = data
	}
	return c.JSON(http.StatusOK, view)
}

type fetchFunc func(ctx context.Context, q url.Values) (json.RawMessage, error)

// dataset binds a view identifier to its upstream call.
func (h *ConsoleHandler) dataset(view string) fetchFunc {
	switch view {
	case "dashboard":
		return h.upstream.Statistics
	case "trading.orders":
		return h.upstream.Orders
	case "trading.fills":
		return h.upstream.Fills
	case "trading.positions":
		return h.upstream.Positions
	case "trading.accounts":
		return h.upstream.Accounts
	case "trading.transactions":
		return h.upstream.Transactions
	case "trading.pending":
		return h.upstream.PendingOrders
	case "analytics.performance":
		return h.upstream.Performance
	case "analytics.risk":
		return h.upstream.Risk
	case "strategy.list":
		return h.upstream.Strategies
	case "strategy.tenant":
		return func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return h.upstream.TenantStrategies(ctx, h.scope.Current().TenantID, q)
		}
	case "strategy.bindings":
		return h.upstream.StrategyBindings
	case "monitor.signals":
		return func(ctx context.Context, _ url.Values) (json.RawMessage, error) {
			return h.upstream.SignalMonitorStatus(ctx)
		}
	case "monitor.history":
		return h.upstream.SignalEvents
	case "monitor.sync":
		return h.upstream.SyncStatus
	case "monitor.nodes":
		return h.upstream.Nodes
	case "user.manage":
		return h.upstream.Users
	case "user.exchange":
		return h.upstream.ExchangeAccounts
	case "finance.withdrawals":
		return h.upstream.Withdrawals
	case "finance.pointcard":
		return h.upstream.PointcardLogs
	case "finance.rewards":
		return h.upstream.PointcardRewards
	case "finance.pools":
		return h.upstream.ProfitPools
	case "system.tenants":
		return h.upstream.Tenants
	case "system.quota":
		return h.upstream.QuotaPlans
	case "system.admins":
		return h.upstream.Admins
	case "system.audit":
		return h.upstream.AuditLogs
	}
	return nil
}
