package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/metrics"
	"github.com/Lutefd/itinerary-sorter/internal/model"
)

// InstrumentedProvider records the latency and outcome of every fetch made
// through the wrapped provider.
type InstrumentedProvider struct {
	next    RateProvider
	metrics *metrics.RankingMetrics
}

func NewInstrumentedProvider(next RateProvider, m *metrics.RankingMetrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, metrics: m}
}

func (p *InstrumentedProvider) FetchRates(ctx context.Context, base string) (*model.ExchangeRates, error) {
	start := time.Now()
	rates, err := p.next.FetchRates(ctx, base)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		var rfe *model.RateFetchError
		if errors.As(err, &rfe) {
			outcome = metrics.OutcomeRateFetchFail
		}
	}
	p.metrics.RateFetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return rates, err
}
