package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

// CachingRepository decorates a Repository with a redis read-through cache
// for assessment schemas, which are read on every builder visit and every
// candidate form load but change only on explicit saves. Writes go straight
// through and invalidate; cache failures degrade to the underlying store
// rather than surfacing as errors.
type CachingRepository struct {
	storage.Repository
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and wraps the repository
func New(repo storage.Repository, address, password string, db int, ttl time.Duration) (*CachingRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CachingRepository{Repository: repo, rdb: rdb, ttl: ttl}, nil
}

func assessmentKey(jobID int64) string {
	return fmt.Sprintf("assessment:%d", jobID)
}

// GetAssessment serves the schema from cache when present, falling back to
// the underlying store and populating the cache on a miss
func (c *CachingRepository) GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error) {
	key := assessmentKey(jobID)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var a models.Assessment
		if err := json.Unmarshal(data, &a); err == nil {
			return &a, nil
		}
		slog.Warn("dropping undecodable cache entry", "key", key)
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		slog.Warn("redis read failed, falling back to store", "key", key, "error", err)
	}

	a, err := c.Repository.GetAssessment(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(a); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			slog.Warn("failed to populate cache", "key", key, "error", err)
		}
	}

	return a, nil
}

// SaveAssessment writes through and invalidates the cached schema
func (c *CachingRepository) SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error) {
	saved, err := c.Repository.SaveAssessment(ctx, jobID, a)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Del(ctx, assessmentKey(jobID)).Err(); err != nil {
		slog.Warn("failed to invalidate cache", "job_id", jobID, "error", err)
	}
	return saved, nil
}

// DeleteAssessment deletes from the store and invalidates the cache
func (c *CachingRepository) DeleteAssessment(ctx context.Context, jobID int64) error {
	if err := c.Repository.DeleteAssessment(ctx, jobID); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, assessmentKey(jobID)).Err(); err != nil {
		slog.Warn("failed to invalidate cache", "job_id", jobID, "error", err)
	}
	return nil
}

// Ping checks both redis and the underlying store
func (c *CachingRepository) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return c.Repository.Ping(ctx)
}

// Close closes the redis connection and the underlying store
func (c *CachingRepository) Close() error {
	if err := c.rdb.Close(); err != nil {
		slog.Warn("failed to close redis connection", "error", err)
	}
	return c.Repository.Close()
}
