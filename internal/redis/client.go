package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is absent; callers fall back to
// recomputing the value.
var ErrCacheMiss = fmt.Errorf("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Report caching. Reports are derived data rebuilt from orders, so a short
// TTL is the only invalidation needed.

func (c *Client) SetReport(key string, report interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return c.rdb.Set(ctx, "report:"+key, jsonData, ttl).Err()
}

func (c *Client) GetReport(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "report:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get report: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateReports() error {
	ctx := context.Background()
	keys, err := c.rdb.Keys(ctx, "report:*").Result()
	if err != nil {
		return fmt.Errorf("failed to list report keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Token revocation. Logged-out token IDs are held until their natural
// expiry so a stolen token cannot outlive the session.

func (c *Client) RevokeToken(tokenID string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "revoked:"+tokenID, 1, ttl).Err()
}

func (c *Client) IsTokenRevoked(tokenID string) (bool, error) {
	ctx := context.Background()
	_, err := c.rdb.Get(ctx, "revoked:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
