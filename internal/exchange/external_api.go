package exchange

import (
	"context"

	"github.com/Lutefd/itinerary-sorter/internal/model"
)

// RateProvider returns the conversion rates of every known currency
// relative to base. Failures are reported as *model.RateFetchError.
type RateProvider interface {
	FetchRates(ctx context.Context, base string) (*model.ExchangeRates, error)
}
