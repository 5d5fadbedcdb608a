package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"microblog/internal/model"
)

// TimelineCache keeps per-author message listings and per-author
// message counters in Redis. Everything here is best-effort: the
// database stays the source of truth and callers treat any cache
// error as a miss.
type TimelineCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTimelineCache(client *redisv9.Client, ttl time.Duration) *TimelineCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &TimelineCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *TimelineCache) GetTimeline(ctx context.Context, authorID uint) ([]model.Message, bool, error) {
	key := c.timelineKey(authorID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get timeline failed: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached timeline failed: %w", err)
	}
	return messages, true, nil
}

func (c *TimelineCache) SetTimeline(ctx context.Context, authorID uint, messages []model.Message) error {
	key := c.timelineKey(authorID)
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal timeline cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set timeline failed: %w", err)
	}
	return nil
}

func (c *TimelineCache) DeleteTimeline(ctx context.Context, authorID uint) error {
	key := c.timelineKey(authorID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete timeline failed: %w", err)
	}
	return nil
}

func (c *TimelineCache) IncrAuthorCount(ctx context.Context, authorID uint) error {
	if err := c.client.Incr(ctx, c.countKey(authorID)).Err(); err != nil {
		return fmt.Errorf("redis incr author count failed: %w", err)
	}
	return nil
}

func (c *TimelineCache) DecrAuthorCount(ctx context.Context, authorID uint) error {
	if err := c.client.Decr(ctx, c.countKey(authorID)).Err(); err != nil {
		return fmt.Errorf("redis decr author count failed: %w", err)
	}
	return nil
}

func (c *TimelineCache) AuthorCount(ctx context.Context, authorID uint) (int64, error) {
	raw, err := c.client.Get(ctx, c.countKey(authorID)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get author count failed: %w", err)
	}
	return raw, nil
}

func (c *TimelineCache) timelineKey(authorID uint) string {
	return fmt.Sprintf("timeline:author:%d", authorID)
}

func (c *TimelineCache) countKey(authorID uint) string {
	return fmt.Sprintf("stats:author:%d:messages", authorID)
}
