package helpers

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client with bounded connect/read/write
// timeouts so a stalled store surfaces as an error instead of a hung request.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
}
