package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/logger"
	"github.com/Lutefd/itinerary-sorter/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	port     int
	router   http.Handler
	config   commons.Config
	gatherer prometheus.Gatherer
}

func NewServer(config commons.Config, itineraryService service.ItineraryServiceInterface, gatherer prometheus.Gatherer) *Server {
	server := &Server{
		port:     int(config.ServerPort),
		config:   config,
		gatherer: gatherer,
	}
	server.registerRoutes(itineraryService)
	return server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		IdleTimeout:  commons.ServerIdleTimeout,
		ReadTimeout:  commons.ServerReadTimeout,
		WriteTimeout: commons.ServerWriteTimeout,
	}

	ch := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %d", s.port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ch <- fmt.Errorf("failed to start server: %w", err)
		}
		close(ch)
	}()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), commons.ServerShutdownTimeout)
		defer cancel()

		logger.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	}
}
