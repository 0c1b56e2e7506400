package server

import (
	"github.com/Lutefd/itinerary-sorter/internal/handler"
	api_middleware "github.com/Lutefd/itinerary-sorter/internal/middleware"
	"github.com/Lutefd/itinerary-sorter/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes(itineraryService service.ItineraryServiceInterface) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if s.config.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	rateLimiter := api_middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)

	router.Get("/", handler.HandlerRoot)
	router.Get("/healthz", handler.HandlerReadiness)
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	router.With(rateLimiter.Middleware).Post("/sort_itineraries", itineraryHandler.SortItineraries)
	s.router = router
}
