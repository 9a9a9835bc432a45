package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roadtrip-map-service/internal/ports"
)

// Default lifetime of a cached route leg. Roads change slowly; a day keeps
// repeated renders of the same map off the external API.
const routeCacheTTL = 24 * time.Hour

// RedisRouteCache stores resolved route legs keyed by the external place id
// pair. Values are JSON-encoded RouteResults, including the "na" labels and
// missing-geometry cases, so a negative answer is cached as well.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: routeCacheTTL}
}

func routeKey(originID, destinationID string) string {
	return "route:" + originID + "|" + destinationID
}

// Fetch the cached leg for one origin/destination pair.
func (c *RedisRouteCache) Get(ctx context.Context, originID, destinationID string) (ports.RouteResult, bool, error) {
	if c.client == nil {
		return ports.RouteResult{}, false, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, routeKey(originID, destinationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var result ports.RouteResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode value: %w", err)
	}

	return result, true, nil
}

// Store one resolved leg.
func (c *RedisRouteCache) Put(ctx context.Context, originID, destinationID string, result ports.RouteResult) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert route cache: encode value: %w", err)
	}

	if err := c.client.Set(ctx, routeKey(originID, destinationID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", originID, destinationID, err)
	}

	return nil
}
