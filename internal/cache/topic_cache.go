package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	trendingKey       = "topics:trending"
	categoryKeyPrefix = "topics:category:"
)

// TopicViewCache is a read-through cache for the hot, rarely changing
// topic views (trending and per-category). Every catalog write invalidates
// it. All operations fail open: a redis hiccup degrades to the database,
// it never fails a request.
type TopicViewCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewTopicViewCache(client *redis.Client, ttl time.Duration) *TopicViewCache {
	return &TopicViewCache{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (c *TopicViewCache) GetTrending() ([]models.TrendingTopic, bool) {
	var topics []models.TrendingTopic
	if !c.get(trendingKey, &topics) {
		return nil, false
	}
	return topics, true
}

func (c *TopicViewCache) SetTrending(topics []models.TrendingTopic) {
	c.set(trendingKey, topics)
}

func (c *TopicViewCache) GetCategory(category string) ([]models.TopicSummary, bool) {
	var topics []models.TopicSummary
	if !c.get(categoryKeyPrefix+category, &topics) {
		return nil, false
	}
	return topics, true
}

func (c *TopicViewCache) SetCategory(category string, topics []models.TopicSummary) {
	c.set(categoryKeyPrefix+category, topics)
}

// Invalidate drops every cached view. Categories are a closed enum, so the
// keys can be enumerated instead of scanned.
func (c *TopicViewCache) Invalidate() {
	keys := make([]string, 0, len(models.Categories)+1)
	keys = append(keys, trendingKey)
	for _, cat := range models.Categories {
		keys = append(keys, categoryKeyPrefix+string(cat))
	}

	if err := c.client.Del(c.ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate topic view cache",
			zap.Error(err),
		)
	}
}

func (c *TopicViewCache) get(key string, dest interface{}) bool {
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Topic view cache read failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Log.Warn("Topic view cache entry corrupt, dropping",
			zap.String("key", key),
			zap.Error(err),
		)
		c.client.Del(c.ctx, key)
		return false
	}

	return true
}

func (c *TopicViewCache) set(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Log.Warn("Failed to marshal topic view cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := c.client.Set(c.ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.Warn("Topic view cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
