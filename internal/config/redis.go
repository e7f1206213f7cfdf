package config

// This file defines a Redis client constructor. Redis is optional in
// this application: when available it backs the response cache on the
// list endpoints and the rate limiter. A single-machine install without
// Redis loses nothing but those two conveniences, so a failed
// connection returns nil and callers degrade to pass-through behavior.

import (
    "context"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//   REDIS_ADDR – host:port of the Redis server
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
// When REDIS_ADDR is unset, or the server does not answer a ping within
// two seconds, nil is returned and Redis-backed features stay disabled.
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if addr == "" {
        return nil
    }
    dbNum := 0
    if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
        if n, err := strconv.Atoi(dbStr); err == nil {
            dbNum = n
        }
    }
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       dbNum,
    })
    // Ping the server with a short timeout. Return nil on failure.
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
