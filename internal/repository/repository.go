package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/model"
)

const (
	LogSinkStdout   = "stdout"
	LogSinkPostgres = "postgres"
	LogSinkRedis    = "redis"
)

// LogRepository stores application log entries in monthly partitions.
type LogRepository interface {
	SaveLog(ctx context.Context, log model.Log) error
	CreatePartition(ctx context.Context, month time.Time) error
	Close() error
}

// OpenLogRepository connects the repository behind sink. The stdout sink
// has no repository and yields nil.
func OpenLogRepository(sink, postgresConn, redisAddr, redisPass string) (LogRepository, error) {
	switch sink {
	case LogSinkStdout:
		return nil, nil
	case LogSinkPostgres:
		repo, err := NewPostgresLogRepository(postgresConn, nil)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case LogSinkRedis:
		repo, err := NewRedisLogRepository(redisAddr, redisPass)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown log sink %q", sink)
	}
}
