package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeRateFetchFail = "rate_fetch_error"
	OutcomeError         = "error"
)

// RankingMetrics groups the collectors of the sorting endpoint.
type RankingMetrics struct {
	SortRequestsTotal      *prometheus.CounterVec
	SortDuration           *prometheus.HistogramVec
	ItinerariesSortedTotal *prometheus.CounterVec
	RateFetchDuration      *prometheus.HistogramVec
}

func NewRankingMetrics(reg prometheus.Registerer) *RankingMetrics {
	factory := promauto.With(reg)
	return &RankingMetrics{
		SortRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itinerary_sort_requests_total",
				Help: "Sort requests by sorting type and outcome",
			},
			[]string{"sorting_type", "outcome"},
		),
		SortDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itinerary_sort_duration_seconds",
				Help:    "Time spent ranking itineraries, rate fetch included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sorting_type"},
		),
		ItinerariesSortedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itineraries_sorted_total",
				Help: "Itineraries returned in successful sort responses",
			},
			[]string{"sorting_type"},
		),
		RateFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exchange_rate_fetch_duration_seconds",
				Help:    "Latency of exchange rate table fetches",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
	}
}
