package myredis

import (
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	// Addr is a redis:// or rediss:// URL, or a bare host:port.
	Addr string
}

// NewRedisUniversalClient creates a client for addr. A redis:// URL may carry credentials and a database number.
func NewRedisUniversalClient(addr string) (redis.UniversalClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	opts := &redis.UniversalOptions{Addrs: []string{addr}}
	if u, err := redis.ParseURL(addr); err == nil {
		opts = &redis.UniversalOptions{
			Addrs:     []string{u.Addr},
			Username:  u.Username,
			Password:  u.Password,
			DB:        u.DB,
			TLSConfig: u.TLSConfig,
		}
	} else if strings.Contains(addr, "://") {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewUniversalClient(opts), nil
}
