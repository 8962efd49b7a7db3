package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ViewsCache кэширует счетчики просмотров событий, чтобы не
// агрегировать таблицу хитов на каждый публичный запрос
type ViewsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewsCache(client *redis.Client, ttl time.Duration) *ViewsCache {
	return &ViewsCache{
		client: client,
		ttl:    ttl,
	}
}

func viewsKey(eventID int64) string {
	return fmt.Sprintf("views:event:%d", eventID)
}

func (c *ViewsCache) GetViews(ctx context.Context, eventID int64) (int64, bool, error) {
	count, err := c.client.Get(ctx, viewsKey(eventID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (c *ViewsCache) SetViews(ctx context.Context, eventID, count int64) error {
	return c.client.Set(ctx, viewsKey(eventID), count, c.ttl).Err()
}

func (c *ViewsCache) InvalidateViews(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, viewsKey(eventID)).Err()
}
