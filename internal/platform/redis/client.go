package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"crease/internal/sentinel"
)

var (
	redisPoolHits = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crease_redis_pool_hits",
		Help: "Number of times a connection was found in the pool",
	})
	redisPoolMisses = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crease_redis_pool_misses",
		Help: "Number of times a connection was not found in the pool",
	})
	redisPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crease_redis_pool_total_conns",
		Help: "Number of total connections in the pool",
	})
	redisPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crease_redis_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})
)

// Config holds redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New connects a go-redis client and verifies it with a ping.
// Returns nil if the address is empty so callers can fall back to in-memory stores.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis ping: %w", sentinel.ErrUnavailable, err)
	}

	return client, nil
}

// CollectPoolStats periodically exports connection pool statistics until ctx ends.
func CollectPoolStats(ctx context.Context, client *redis.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := client.PoolStats()
			redisPoolHits.Set(float64(stats.Hits))
			redisPoolMisses.Set(float64(stats.Misses))
			redisPoolTotalConns.Set(float64(stats.TotalConns))
			redisPoolIdleConns.Set(float64(stats.IdleConns))
		}
	}
}
