package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"viva/internal/domain/service"
)

const geocodeKeyPrefix = "geocode:"

type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *RedisGeocodeCache) Get(ctx context.Context, key string) (*service.Coordinates, error) {
	data, err := c.client.Get(ctx, geocodeKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var coords service.Coordinates
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, err
	}
	return &coords, nil
}

func (c *RedisGeocodeCache) Set(ctx context.Context, key string, coords *service.Coordinates) error {
	data, err := json.Marshal(coords)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, geocodeKeyPrefix+key, data, c.ttl).Err()
}

var _ service.GeocodeCache = (*RedisGeocodeCache)(nil)
