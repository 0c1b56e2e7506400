package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/logger"
	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

type dependencies struct {
	logRepo      repository.LogRepository
	partitionMgr PartitionManager
}

type PartitionManager interface {
	Start(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps, err := initDependencies(config)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	if deps == nil {
		log.Printf("LOG_SINK=%s keeps no partitions, nothing to do", config.LogSink)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- runWorker(ctx, deps)
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Worker failed: %v", err)
		}
	case <-signalChan:
		log.Println("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		select {
		case <-errChan:
			log.Println("Worker shut down gracefully")
		case <-time.After(shutdownTimeout):
			log.Println("Shutdown timed out")
		}
	}
}

// initDependencies returns nil when the configured sink has nothing to
// partition.
func initDependencies(config commons.Config) (*dependencies, error) {
	logRepo, err := repository.OpenLogRepository(config.LogSink, config.PostgresConn, config.RedisAddr, config.RedisPass)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log repository: %w", err)
	}
	if logRepo == nil {
		return nil, nil
	}

	return &dependencies{
		logRepo:      logRepo,
		partitionMgr: logger.NewPartitionManager(logRepo),
	}, nil
}

func runWorker(ctx context.Context, deps *dependencies) error {
	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := deps.partitionMgr.Start(ctx); err != nil {
			errChan <- fmt.Errorf("failed to start partition manager: %w", err)
			return
		}

		<-ctx.Done()
		log.Println("Worker shutting down...")
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	defer func() {
		if err := deps.logRepo.Close(); err != nil {
			log.Printf("Error closing log repository: %v", err)
		}
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
