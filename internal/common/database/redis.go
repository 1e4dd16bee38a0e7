// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"career-workers/internal/common/config"
)

// RedisClient holds the connection used by the catalog cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis does not dial; call Ping to check the connection.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	return &RedisClient{Client: redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     poolSize,
		MinIdleConns: poolSize / 5,
	})}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: ping: %w", c.Client.Options().Addr, err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
