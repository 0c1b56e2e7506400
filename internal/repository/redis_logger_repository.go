package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	redisLogKeyPrefix    = "logs:"
	redisArchiverGroup   = "archivers"
	redisLogStreamMaxLen = 100000
)

// RedisLogRepository appends log entries to one Redis stream per month.
// Streams are capped approximately at redisLogStreamMaxLen entries.
type RedisLogRepository struct {
	client *redis.Client
}

func NewRedisLogRepository(addr, password string) (*RedisLogRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLogRepository{client: client}, nil
}

func LogStreamKey(t time.Time) string {
	return redisLogKeyPrefix + model.LogPartition(t)
}

func (r *RedisLogRepository) SaveLog(ctx context.Context, log model.Log) error {
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: LogStreamKey(log.Timestamp),
		MaxLen: redisLogStreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":        log.ID.String(),
			"level":     string(log.Level),
			"message":   log.Message,
			"timestamp": log.Timestamp.UTC().Format(time.RFC3339Nano),
			"source":    log.Source,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}
	return nil
}

// CreatePartition creates the month's stream ahead of time together with
// the consumer group archivers read it through.
func (r *RedisLogRepository) CreatePartition(ctx context.Context, month time.Time) error {
	key := LogStreamKey(month)
	err := r.client.XGroupCreateMkStream(ctx, key, redisArchiverGroup, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("failed to create partition %s: %w", key, err)
	}
	return nil
}

func (r *RedisLogRepository) Close() error {
	return r.client.Close()
}

func isBusyGroup(err error) bool {
	var redisErr redis.Error
	return errors.As(err, &redisErr) && strings.HasPrefix(redisErr.Error(), "BUSYGROUP")
}
