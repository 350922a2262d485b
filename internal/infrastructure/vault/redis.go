package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
)

const defaultConnectTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisVault is a durable tier backed by Redis, for deployments where the
// gateway has no writable disk. Key format: console:<slot>.
type RedisVault struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisVault(client *redis.Client, log zerolog.Logger) *RedisVault {
	return &RedisVault{client: client, log: log}
}

func (v *RedisVault) key(slot string) string {
	return "console:" + slot
}

func (v *RedisVault) ReadToken(ctx context.Context) (string, error) {
	tok, err := v.client.Get(ctx, v.key("token")).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("vault token read: %w", err)
	}
	return tok, nil
}

func (v *RedisVault) WriteToken(ctx context.Context, token string) error {
	return v.client.Set(ctx, v.key("token"), token, 0).Err()
}

func (v *RedisVault) DeleteToken(ctx context.Context) error {
	return v.client.Del(ctx, v.key("token")).Err()
}

func (v *RedisVault) ReadIdentity(ctx context.Context) (*domain.Identity, error) {
	raw, err := v.client.Get(ctx, v.key("identity")).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vault identity read: %w", err)
	}
	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		// Corrupt cache entry reads as absent.
		v.log.Warn().Err(err).Msg("cached identity corrupt, dropping")
		_ = v.client.Del(ctx, v.key("identity")).Err()
		return nil, nil
	}
	return &id, nil
}

func (v *RedisVault) WriteIdentity(ctx context.Context, id *domain.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("vault identity encode: %w", err)
	}
	return v.client.Set(ctx, v.key("identity"), raw, 0).Err()
}

func (v *RedisVault) DeleteIdentity(ctx context.Context) error {
	return v.client.Del(ctx, v.key("identity")).Err()
}
