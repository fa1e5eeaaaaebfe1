package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const externalSpotsKey = "parkease:external_spots"

// NewRedisClient connects to Redis. Returns nil when addr is empty or the
// server is unreachable; callers degrade by running without a cache.
func NewRedisClient(addr, password string, db int, logger *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable; search caching disabled",
			zap.String("addr", addr),
			zap.Error(err))
		return nil
	}

	logger.Info("Redis connection established", zap.String("addr", addr))
	return client
}

// ExternalSpotCache keeps the external provider's result set in Redis for a
// short TTL so bursts of searches do not hammer the ArcGIS endpoint.
type ExternalSpotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewExternalSpotCache creates the cache. A zero TTL defaults to one minute.
func NewExternalSpotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ExternalSpotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ExternalSpotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached result set. Cache misses and Redis errors both
// report ok=false; the caller fetches fresh.
func (c *ExternalSpotCache) Get(ctx context.Context) ([]model.ParkingSpot, bool) {
	payload, err := c.client.Get(ctx, externalSpotsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read external spot cache", zap.Error(err))
		}
		return nil, false
	}

	var spots []model.ParkingSpot
	if err := json.Unmarshal(payload, &spots); err != nil {
		c.logger.Warn("Corrupt external spot cache entry", zap.Error(err))
		return nil, false
	}

	return spots, true
}

// Set stores the result set. Failures are logged and otherwise ignored.
func (c *ExternalSpotCache) Set(ctx context.Context, spots []model.ParkingSpot) {
	payload, err := json.Marshal(spots)
	if err != nil {
		c.logger.Warn("Failed to encode external spot cache entry", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, externalSpotsKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write external spot cache", zap.Error(err))
	}
}
