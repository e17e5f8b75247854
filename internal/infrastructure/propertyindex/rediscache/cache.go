// Package rediscache decorates a property index with a Redis
// read-through cache.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// Cache serves radius queries from Redis when a fresh answer exists and
// falls back to the wrapped index otherwise. Cache failures never fail a
// lookup: the inner index is always authoritative.
type Cache struct {
	inner  ports.PropertyIndex
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// New wraps an index with a Redis cache.
func New(inner ports.PropertyIndex, client *redis.Client, ttl time.Duration, log *logrus.Logger) *Cache {
	return &Cache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey builds a stable key for a radius query. Coordinates are rounded
// to five decimals (about one meter), so nearby repeat queries hit.
func cacheKey(lat, lon, radiusMeters float64) string {
	return fmt.Sprintf("nameguard:geo:%.5f:%.5f:%.0f", lat, lon, radiusMeters)
}

// FindPropertiesNear answers from cache when possible and delegates to the
// wrapped index on miss, caching the fresh result.
func (c *Cache) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	key := cacheKey(lat, lon, radiusMeters)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var props []entities.ExistingProperty
		if err := json.Unmarshal(cached, &props); err == nil {
			return props, nil
		}
		c.log.WithField("key", key).Warn("discarding corrupt geo cache entry")
	} else if err != redis.Nil {
		c.log.WithError(err).Debug("geo cache read failed")
	}

	props, err := c.inner.FindPropertiesNear(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(props); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.WithError(err).Debug("geo cache write failed")
		}
	}

	return props, nil
}
