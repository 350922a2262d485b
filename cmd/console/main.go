// Command console runs the IronBull admin console gateway: it owns the
// operator's session, materializes the console routes after login, and
// proxies every data view to the upstream data API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lybfish/ironbull/internal/api"
	"github.com/lybfish/ironbull/internal/api/handler"
	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/ports"
	"github.com/lybfish/ironbull/internal/core/service"
	"github.com/lybfish/ironbull/internal/infrastructure/vault"
	"github.com/lybfish/ironbull/internal/pkg/config"
	"github.com/lybfish/ironbull/internal/upstream"
	"github.com/lybfish/ironbull/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Durable credential tier ---
	var durable ports.TokenVault
	var rdb *redis.Client
	switch cfg.Vault.Backend {
	case "redis":
		rdb, err = vault.Connect(ctx, vault.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis vault unavailable")
		}
		durable = vault.NewRedisVault(rdb, logger.For("vault"))
	default:
		durable, err = vault.NewFileVault(cfg.Vault.Path, cfg.Vault.SealKey, logger.For("vault"))
		if err != nil {
			log.Fatal().Err(err).Msg("file vault init failed")
		}
	}

	// --- Session & navigation core ---
	creds := service.NewCredentialStore(durable, vault.NewMemoryVault(), logger.For("credentials"))
	scope := service.NewScopeHolder(domain.Scope{
		TenantID:  cfg.DefaultTenantID,
		AccountID: cfg.DefaultAccountID,
	})
	client := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, creds, scope, logger.For("upstream"))
	nav := service.NewNavigator(domain.ConsoleMenu, cfg.HomePath, client, creds, logger.For("navigator"))
	client.OnTeardown(nav.Reset)

	// --- HTTP surface ---
	e := api.NewRouter(api.Dependencies{
		Sessions:  handler.NewSessionHandler(client, creds, scope, nav, logger.For("session")),
		Console:   handler.NewConsoleHandler(nav, client, scope, logger.For("console")),
		Admin:     handler.NewAdminHandler(client, logger.For("admin")),
		Readiness: handler.NewReadinessHandler(cfg.Upstream.BaseURL, rdb),
		Navigator: nav,
		Log:       log,
	})

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("console gateway listening")
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
