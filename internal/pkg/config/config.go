package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR, default=:8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`

	// HomePath overrides the console landing page. Empty means "use the
	// server-suggested path, falling back to /dashboard".
	HomePath string `env:"HOME_PATH"`

	// Default tenant/account scope applied before login, matching the
	// development convenience of the original console.
	DefaultTenantID  int64 `env:"DEFAULT_TENANT_ID,  default=1"`
	DefaultAccountID int64 `env:"DEFAULT_ACCOUNT_ID, default=1"`

	Upstream UpstreamConfig
	Vault    VaultConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	// BaseURL of the IronBull data API.
	BaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:8000"`
	// Timeout applies to every upstream request; on expiry the caller gets
	// a timeout error, no retry.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=15s"`
}

type VaultConfig struct {
	// Backend selects the durable credential tier: "file" or "redis".
	Backend string `env:"VAULT_BACKEND, default=file"`
	// Path of the state file for the file backend.
	Path string `env:"VAULT_PATH, default=ironbull-session.json"`
	// SealKey enables encryption-at-rest for the file backend when set.
	SealKey string `env:"VAULT_SEAL_KEY"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Vault.Backend != "file" && cfg.Vault.Backend != "redis" {
		return nil, fmt.Errorf("config: unknown vault backend %q", cfg.Vault.Backend)
	}
	return &cfg, nil
}
