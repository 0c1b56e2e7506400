package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/logger"
	"github.com/Lutefd/itinerary-sorter/internal/metrics"
	"github.com/Lutefd/itinerary-sorter/internal/model"
)

type Ranker interface {
	Sort(ctx context.Context, sortingType model.SortingType, itineraries []model.Itinerary) ([]model.Itinerary, error)
}

type ItineraryService struct {
	ranker  Ranker
	metrics *metrics.RankingMetrics
}

func NewItineraryService(ranker Ranker, m *metrics.RankingMetrics) *ItineraryService {
	return &ItineraryService{
		ranker:  ranker,
		metrics: m,
	}
}

func (s *ItineraryService) Sort(ctx context.Context, sortingType string, itineraries []model.Itinerary) (model.SortItinerariesResponse, error) {
	st, err := model.ParseSortingType(sortingType)
	if err != nil {
		s.metrics.SortRequestsTotal.WithLabelValues("unknown", metrics.OutcomeInvalid).Inc()
		return model.SortItinerariesResponse{}, err
	}

	start := time.Now()
	sorted, err := s.ranker.Sort(ctx, st, itineraries)
	s.metrics.SortDuration.WithLabelValues(string(st)).Observe(time.Since(start).Seconds())
	if err != nil {
		var rfe *model.RateFetchError
		if errors.As(err, &rfe) {
			s.metrics.SortRequestsTotal.WithLabelValues(string(st), metrics.OutcomeRateFetchFail).Inc()
			logger.Errorf("sorting %d itineraries by %s: %v", len(itineraries), st, err)
			return model.SortItinerariesResponse{}, err
		}
		s.metrics.SortRequestsTotal.WithLabelValues(string(st), metrics.OutcomeError).Inc()
		return model.SortItinerariesResponse{}, fmt.Errorf("failed to sort itineraries: %w", err)
	}

	s.metrics.SortRequestsTotal.WithLabelValues(string(st), metrics.OutcomeSuccess).Inc()
	s.metrics.ItinerariesSortedTotal.WithLabelValues(string(st)).Add(float64(len(sorted)))

	return model.SortItinerariesResponse{
		SortingType:       st,
		SortedItineraries: sorted,
	}, nil
}
