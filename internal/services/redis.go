package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solana-casino-backend/internal/errs"
)

// Cache wraps Redis for the concerns that sit beside the settlement
// path: idempotency locks, per-wallet rate limits, and oracle price
// caching. Nothing here is a source of truth; MySQL is.
type Cache struct {
	client *redis.Client
}

func NewCache(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// AcquireIdempotency takes the per-request lock for a client-supplied
// idempotency key. Returns false when another in-flight request holds
// it. The token guards the release so a slow loser cannot free the
// winner's lock.
func (c *Cache) AcquireIdempotency(ctx context.Context, wallet, key, token string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, fmt.Sprintf(KeyIdempotencyLock, wallet, key), token, ttl).Result()
	if err != nil {
		return false, errs.Wrap(errs.KindInternal, "acquire idempotency lock", err)
	}
	return ok, nil
}

// Compare-and-delete, so only the token holder can release.
var releaseLockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

func (c *Cache) ReleaseIdempotency(ctx context.Context, wallet, key, token string) error {
	err := releaseLockScript.Run(ctx, c.client,
		[]string{fmt.Sprintf(KeyIdempotencyLock, wallet, key)}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errs.Wrap(errs.KindInternal, "release idempotency lock", err)
	}
	return nil
}

// StoreIdempotentResult caches the serialized settlement response so a
// retry of the same key replays the original answer instead of placing
// a second bet.
func (c *Cache) StoreIdempotentResult(ctx context.Context, wallet, key string, payload []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, fmt.Sprintf(KeyIdempotencyResult, wallet, key), payload, ttl).Err()
	if err != nil {
		return errs.Wrap(errs.KindInternal, "store idempotent result", err)
	}
	return nil
}

func (c *Cache) IdempotentResult(ctx context.Context, wallet, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyIdempotencyResult, wallet, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.KindInternal, "load idempotent result", err)
	}
	return data, true, nil
}

// CheckRateLimit counts requests per wallet and action in a fixed
// window. Returns false once the limit is exceeded.
func (c *Cache) CheckRateLimit(ctx context.Context, wallet, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, wallet, action)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, errs.Wrap(errs.KindInternal, "check rate limit", err)
	}
	if count == 1 {
		c.client.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// CachedPrice returns the last oracle quote for a symbol, if fresh.
func (c *Cache) CachedPrice(ctx context.Context, symbol string) (string, bool) {
	price, err := c.client.Get(ctx, fmt.Sprintf(KeyPrice, symbol)).Result()
	if err != nil {
		return "", false
	}
	return price, true
}

func (c *Cache) StorePrice(ctx context.Context, symbol, price string, ttl time.Duration) {
	c.client.Set(ctx, fmt.Sprintf(KeyPrice, symbol), price, ttl)
}
