package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

// terminal statuses never change, so a generous TTL only bounds memory
const statusCacheTTL = 24 * time.Hour

// redisStatusCache implements [StatusCache] on top of go-redis. Terminal
// statuses are cached under "translation:status:<jobID>" and lifecycle events
// are published on the configured pub/sub channel.
type redisStatusCache struct {
	client  *redis.Client
	channel string
	logger  *logger.Logger
}

// NewRedisStatusCache connects to Redis and returns a [StatusCache].
// The connection is verified with a ping.
func NewRedisStatusCache(ctx context.Context, cfg config.Redis, log *logger.Logger) (StatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	log.Info().Str("func", "NewRedisStatusCache").Str("addr", cfg.Addr).Msg("connected to redis")

	return &redisStatusCache{
		client:  client,
		channel: cfg.Channel,
		logger:  log,
	}, nil
}

func (c *redisStatusCache) GetStatus(ctx context.Context, jobID string) (models.JobStatus, error) {
	value, err := c.client.Get(ctx, statusKey(jobID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("error reading status from redis: %w", err)
	}

	status := models.JobStatus(value)
	if !status.Valid() {
		// stale or foreign value under our key; treat as a miss
		return "", ErrCacheMiss
	}

	return status, nil
}

func (c *redisStatusCache) SetStatus(ctx context.Context, job models.TranslationJob) error {
	err := c.client.Set(ctx, statusKey(job.JobID), string(job.Status), statusCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("error caching status in redis: %w", err)
	}

	return nil
}

func (c *redisStatusCache) PublishEvent(ctx context.Context, event models.JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling job event: %w", err)
	}

	if err = c.client.Publish(ctx, c.channel, payload).Err(); err != nil {
		return fmt.Errorf("error publishing job event to redis: %w", err)
	}

	return nil
}

func (c *redisStatusCache) Close() error {
	return c.client.Close()
}

func statusKey(jobID string) string {
	return "translation:status:" + jobID
}
