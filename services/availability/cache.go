package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayloop/models"
	"stayloop/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ViewCache caches computed availability views in Redis. Each property has a
// version counter; view keys embed the counter, so invalidation is a single
// INCR and stale keys fall out via TTL. Cache failures degrade to recompute,
// never to an error.
type ViewCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{Client: client, TTL: ttl}
}

func (c *ViewCache) versionKey(propertyID string) string {
	return "avail:ver:" + propertyID
}

func (c *ViewCache) viewKey(ctx context.Context, propertyID string, start, end time.Time) (string, error) {
	ver, err := c.Client.Get(ctx, c.versionKey(propertyID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("avail:%s:%d:%s:%s",
		propertyID, ver, start.Format("2006-01-02"), end.Format("2006-01-02")), nil
}

func (c *ViewCache) Get(ctx context.Context, propertyID string, start, end time.Time) ([]models.DayAvailability, bool) {
	key, err := c.viewKey(ctx, propertyID, start, end)
	if err != nil {
		return nil, false
	}
	data, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var days []models.DayAvailability
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *ViewCache) Put(ctx context.Context, propertyID string, start, end time.Time, days []models.DayAvailability) {
	key, err := c.viewKey(ctx, propertyID, start, end)
	if err != nil {
		return
	}
	data, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, data, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability view",
			zap.String("propertyID", propertyID), zap.Error(err))
	}
}

// Invalidate bumps the property's version counter so all cached views for it
// become unreachable.
func (c *ViewCache) Invalidate(ctx context.Context, propertyID string) {
	if err := c.Client.Incr(ctx, c.versionKey(propertyID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("propertyID", propertyID), zap.Error(err))
	}
}
