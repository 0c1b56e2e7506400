package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type dependencies struct {
	loadConfig func() (commons.Config, error)
	openDB     func(driverName, dataSourceName string) (*sql.DB, error)
	timeNow    func() time.Time
	loadEnv    func(...string) error
}

var defaultDeps = dependencies{
	loadConfig: commons.LoadConfig,
	openDB:     sql.Open,
	timeNow:    time.Now,
	loadEnv:    godotenv.Load,
}

func main() {
	if err := run(context.Background(), defaultDeps); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, deps dependencies) error {
	if err := deps.loadEnv(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if missing := config.Postgres.Missing(); len(missing) > 0 {
		return fmt.Errorf("incomplete postgres configuration: %s", strings.Join(missing, ", "))
	}

	db, err := deps.openDB("postgres", config.Postgres.ConnString())
	if err != nil {
		return fmt.Errorf("error opening database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}

	repo, err := repository.NewPostgresLogRepository("", db)
	if err != nil {
		return fmt.Errorf("error creating log repository: %w", err)
	}

	if err := migrateLogs(ctx, repo, deps.timeNow()); err != nil {
		return fmt.Errorf("error migrating logs table: %w", err)
	}

	fmt.Println("Logs table migrated successfully!")
	return nil
}

// migrateLogs creates the partitioned logs table and the partition for the
// current month. Later months are left to the worker.
func migrateLogs(ctx context.Context, repo *repository.PostgresLogRepository, now time.Time) error {
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.CreatePartition(ctx, now)
}
