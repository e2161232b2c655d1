package matriz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const resolveKeyPrefix = "matriz:resolve:"

// ResolverCache caches resolution results in redis. Concurrent misses for the
// same key collapse into a single database lookup via singleflight.
type ResolverCache struct {
	client *redis.Client
	repo   Repository
	ttl    time.Duration
	group  singleflight.Group
}

// NewResolverCache constructs the cache. A nil client disables caching and
// every call goes straight to the repository.
func NewResolverCache(client *redis.Client, repo Repository, ttl time.Duration) *ResolverCache {
	return &ResolverCache{client: client, repo: repo, ttl: ttl}
}

// Resolve returns the matrix for natureza/uf, serving from redis when warm.
func (c *ResolverCache) Resolve(ctx context.Context, natureza, uf string) (*MatrizFiscal, error) {
	if c.client == nil {
		return c.repo.Resolve(ctx, natureza, uf)
	}

	key := resolveKeyPrefix + natureza + ":" + uf
	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var m MatrizFiscal
		if err := json.Unmarshal(cached, &m); err == nil {
			return &m, nil
		}
		// Corrupt entry, drop it and fall through to the lookup.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("cache matriz: %w", err)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		m, err := c.repo.Resolve(ctx, natureza, uf)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(m)
		if err == nil {
			c.client.Set(ctx, key, payload, c.ttl)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MatrizFiscal), nil
}

// Invalidate drops all cached resolutions. Called after any matrix mutation;
// the key space is small enough that a full sweep is fine.
func (c *ResolverCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, resolveKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
