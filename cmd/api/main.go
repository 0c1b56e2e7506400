package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/exchange"
	"github.com/Lutefd/itinerary-sorter/internal/logger"
	"github.com/Lutefd/itinerary-sorter/internal/metrics"
	"github.com/Lutefd/itinerary-sorter/internal/ranking"
	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/Lutefd/itinerary-sorter/internal/server"
	"github.com/Lutefd/itinerary-sorter/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logRepo, err := repository.OpenLogRepository(config.LogSink, config.PostgresConn, config.RedisAddr, config.RedisPass)
	if err != nil {
		log.Fatalf("Failed to initialize log repository: %v", err)
	}
	if logRepo != nil {
		logger.InitLogger(logRepo)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rankingMetrics := metrics.NewRankingMetrics(reg)

	rateClient := exchange.NewExchangeRateAPIClient(config.ExchangeRateAPIKey,
		exchange.WithBaseURL(config.ExchangeRateURL),
		exchange.WithTimeout(config.RateFetchTimeout),
	)
	engine := ranking.NewEngine(exchange.NewInstrumentedProvider(rateClient, rankingMetrics), config.BaseCurrency, logger.Sink{})
	itineraryService := service.NewItineraryService(engine, rankingMetrics)

	srv := server.NewServer(config, itineraryService, reg)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Errorf("server stopped: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), commons.LoggerShutdownTimeout)
	defer shutdownCancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error flushing logs: %v", err)
	}
}
