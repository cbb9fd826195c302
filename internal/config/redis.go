package config

// This file defines the Redis client constructor.  Redis serves two jobs
// here: it can hold the snapshot when SNAPSHOT_BACKEND=redis, and it backs
// the distributed rate limiter.  If the server cannot be reached at
// startup the constructor returns nil; the rate limiter then degrades to
// pass-through, while the redis snapshot backend treats nil as fatal.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables:
// REDIS_HOST and REDIS_PORT (or REDIS_ADDR as a host:port shorthand),
// REDIS_PASSWORD, and REDIS_DB.  The returned client may be nil if a
// connection cannot be established within a short timeout.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		dbNum = n
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
