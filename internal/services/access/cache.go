package access

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/experience-marketplace/internal/domain"
)

// TierCache stores resolved access tiers for a short time.
type TierCache interface {
	Get(ctx context.Context, key string) (types.AccessTier, bool, error)
	Set(ctx context.Context, key string, tier types.AccessTier, ttl time.Duration) error
}

func cacheKey(userID, experienceID string) string {
	return userID + ":" + experienceID
}

type redisTierCache struct {
	rdb    goredis.UniversalClient
	prefix string
}

func NewRedisTierCache(rdb goredis.UniversalClient, prefix string) TierCache {
	if prefix == "" {
		prefix = "marketplace:access:"
	}
	return &redisTierCache{rdb: rdb, prefix: prefix}
}

func (c *redisTierCache) Get(ctx context.Context, key string) (types.AccessTier, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return types.ParseAccessTier(val), true, nil
}

func (c *redisTierCache) Set(ctx context.Context, key string, tier types.AccessTier, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, string(tier), ttl).Err()
}
