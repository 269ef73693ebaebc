package weather

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripsmith/internal/metrics"
)

// Cache stores successful snapshots as JSON blobs with a TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns (snapshot, true, nil) on hit and (zero, false, nil) on miss.
func (c *Cache) Get(ctx context.Context, city string) (Snapshot, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(city)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

// Set stores snap. Fallback snapshots are not worth caching and are skipped.
func (c *Cache) Set(ctx context.Context, city string, snap Snapshot) error {
	if !snap.APISuccess {
		return nil
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(city), b, c.ttl).Err()
}

// CachedSource is a read-through Source over Cache and an upstream Source.
type CachedSource struct {
	cache    *Cache
	upstream Source
	log      *zap.Logger
}

func NewCachedSource(cache *Cache, upstream Source, log *zap.Logger) *CachedSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedSource{cache: cache, upstream: upstream, log: log}
}

// GetWeather serves from cache when possible. Cache errors are logged and ignored.
func (s *CachedSource) GetWeather(ctx context.Context, city string) Snapshot {
	snap, ok, err := s.cache.Get(ctx, city)
	if err != nil {
		s.log.Warn("weather cache read failed", zap.String("city", city), zap.Error(err))
	}
	if ok {
		metrics.WeatherLookups.WithLabelValues("cache").Inc()
		return snap
	}

	snap = s.upstream.GetWeather(ctx, city)
	if err := s.cache.Set(ctx, city, snap); err != nil {
		s.log.Warn("weather cache write failed", zap.String("city", city), zap.Error(err))
	}
	return snap
}
