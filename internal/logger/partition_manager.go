package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/robfig/cron/v3"
)

const (
	partitionSchedule = "0 0 1 * *"
	partitionsAhead   = 3
)

// PartitionManager keeps the log storage partitioned by month, always
// partitionsAhead months ahead of the current one.
type PartitionManager struct {
	repo repository.LogRepository
	cron *cron.Cron
	now  func() time.Time
}

func NewPartitionManager(repo repository.LogRepository) *PartitionManager {
	c := cron.New()
	pm := &PartitionManager{
		repo: repo,
		cron: c,
		now:  time.Now,
	}

	_, err := c.AddFunc(partitionSchedule, pm.createNextMonthPartitionWrapper)
	if err != nil {
		Errorf("failed to add cron job: %v", err)
	}

	return pm
}

func (pm *PartitionManager) Start(ctx context.Context) error {
	if err := pm.createInitialPartitions(ctx); err != nil {
		return fmt.Errorf("failed to create initial partitions: %w", err)
	}

	pm.cron.Start()

	go func() {
		<-ctx.Done()
		<-pm.cron.Stop().Done()
	}()

	return nil
}

func (pm *PartitionManager) createInitialPartitions(ctx context.Context) error {
	current := monthStart(pm.now())
	for i := 0; i < partitionsAhead; i++ {
		if err := pm.repo.CreatePartition(ctx, current.AddDate(0, i, 0)); err != nil {
			return err
		}
	}
	return nil
}

func (pm *PartitionManager) createNextMonthPartition(ctx context.Context) error {
	return pm.repo.CreatePartition(ctx, monthStart(pm.now()).AddDate(0, partitionsAhead, 0))
}

func (pm *PartitionManager) createNextMonthPartitionWrapper() {
	if err := pm.createNextMonthPartition(context.Background()); err != nil {
		Errorf("failed to create next month partition: %v", err)
	}
}

// monthStart avoids AddDate normalization surprises such as
// Oct 31 + 1 month landing in December.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
