// Package cache provides the Redis client used to cache the public
// booking-info projection. A nil client disables caching; callers must
// degrade gracefully rather than fail the request.
package cache

import (
	"context"
	"time"

	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects using RedisConfig. Returns nil when no address
// is configured or the server cannot be reached, which disables caching.
func NewRedisClient(config utils.RedisConfig) *redis.Client {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
