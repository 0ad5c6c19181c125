// Package redis provides the shared redis client used for callback
// deduplication.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sweetpay/sweetpay-go/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

// NewClient connects to redis. Redis is optional: with no address
// configured NewClient returns a nil client and callers fall back to
// running without deduplication.
func NewClient(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
