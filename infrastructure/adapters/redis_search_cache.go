package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/redis/go-redis/v9"
)

type redisSearchCache struct {
	logger outbound.LoggerPort
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSearchCache(logger outbound.LoggerPort, redisConfig *config.RedisConfig) outbound.MediaSearchCachePort {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
	})
	return &redisSearchCache{
		logger: logger,
		client: client,
		ttl:    time.Duration(redisConfig.TtlMinutes) * time.Minute,
	}
}

func (c *redisSearchCache) Get(ctx context.Context, provider domain.Provider, query string) ([]domain.MediaAsset, error) {
	payload, err := c.client.Get(ctx, c.key(provider, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var assets []domain.MediaAsset
	if err := json.Unmarshal(payload, &assets); err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("Media search cache hit", map[string]interface{}{
		"provider": provider,
		"query":    query,
		"assets":   len(assets),
	})

	return assets, nil
}

func (c *redisSearchCache) Put(ctx context.Context, provider domain.Provider, query string, assets []domain.MediaAsset) error {
	payload, err := json.Marshal(assets)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(provider, query), payload, c.ttl).Err()
}

func (c *redisSearchCache) key(provider domain.Provider, query string) string {
	return "media:search:" + string(provider) + ":" + query
}
