package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	jwtPrefix     = "jwt."
	runLockPrefix = "runlock."
)

// ErrRunActive is returned when another analysis run currently holds the
// tenant's lock.
var ErrRunActive = fmt.Errorf("an analysis run is already active for this tenant")

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return &Client{cfg: cfg, client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ============ JWT blacklist ============

func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist returns nil when the token IS blacklisted and
// redis.Nil when it is not.
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, getJWTKey(jwtStr)).Err()
}

func getJWTKey(jwtStr string) string {
	return jwtPrefix + jwtStr
}

// ============ Per-tenant run lock ============

// AcquireRunLock serializes analysis runs per tenant: at most one run
// may hold the lock at a time. The TTL guards against a crashed run
// leaving the tenant locked forever.
func (c *Client) AcquireRunLock(ctx context.Context, tenantID uuid.UUID, ttl time.Duration) error {
	ok, err := c.client.SetNX(ctx, getRunLockKey(tenantID), time.Now().Unix(), ttl).Result()
	if err != nil {
		return fmt.Errorf("acquiring run lock: %w", err)
	}
	if !ok {
		return ErrRunActive
	}
	return nil
}

// ReleaseRunLock frees the tenant for the next run.
func (c *Client) ReleaseRunLock(ctx context.Context, tenantID uuid.UUID) error {
	return c.client.Del(ctx, getRunLockKey(tenantID)).Err()
}

func getRunLockKey(tenantID uuid.UUID) string {
	return runLockPrefix + tenantID.String()
}
