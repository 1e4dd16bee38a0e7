package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

const cacheKeyPrefix = "career:catalog:"

// CachedRepository is a read-through cache in front of another Repository.
// Redis failures degrade to a direct read.
type CachedRepository struct {
	next   Repository
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRepository(next Repository, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"catalog": "cache"}),
	}
}

// CacheKey returns the redis key holding the listing for f.
func CacheKey(f Filter) string {
	if f.Category == "" {
		return cacheKeyPrefix + "all"
	}
	return cacheKeyPrefix + "category:" + f.Category
}

func (r *CachedRepository) ListCareers(ctx context.Context, f Filter) ([]models.Career, error) {
	key := CacheKey(f)

	val, err := r.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var careers []models.Career
		if jsonErr := json.Unmarshal([]byte(val), &careers); jsonErr == nil {
			return careers, nil
		}
		r.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("catalog cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	careers, err := r.next.ListCareers(ctx, f)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(careers); err == nil {
		if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("catalog cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return careers, nil
}

// Invalidate drops every cached listing.
func (r *CachedRepository) Invalidate(ctx context.Context) error {
	iter := r.redis.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.redis.Del(ctx, keys...).Err()
}
