package ranking

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/Lutefd/itinerary-sorter/internal/exchange"
	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/shopspring/decimal"
)

// Engine implements the three orderings. It keeps no state between calls;
// rates are fetched at most once per call and dropped afterwards.
type Engine struct {
	rates        exchange.RateProvider
	baseCurrency string
	normalizer   *Normalizer
}

func NewEngine(rates exchange.RateProvider, baseCurrency string, log Logger) *Engine {
	return &Engine{
		rates:        rates,
		baseCurrency: baseCurrency,
		normalizer:   NewNormalizer(log),
	}
}

// Sort dispatches on sortingType. Unknown values fail with
// model.ErrInvalidSortingType before any work is done.
func (e *Engine) Sort(ctx context.Context, sortingType model.SortingType, itineraries []model.Itinerary) ([]model.Itinerary, error) {
	switch sortingType {
	case model.SortingCheapest:
		return e.Cheapest(ctx, itineraries)
	case model.SortingFastest:
		return e.Fastest(itineraries), nil
	case model.SortingBest:
		return e.Best(ctx, itineraries)
	default:
		return nil, model.ErrInvalidSortingType
	}
}

func (e *Engine) Cheapest(ctx context.Context, itineraries []model.Itinerary) ([]model.Itinerary, error) {
	if len(itineraries) == 0 {
		return []model.Itinerary{}, nil
	}

	rates, err := e.fetchRates(ctx)
	if err != nil {
		return nil, err
	}

	keyed := make([]keyedItinerary, len(itineraries))
	for i, it := range itineraries {
		price, ok := e.normalizer.Convert(it.Price, rates)
		keyed[i] = keyedItinerary{itinerary: it, key: price, unresolved: !ok}
	}
	return sortByKey(keyed), nil
}

func (e *Engine) Fastest(itineraries []model.Itinerary) []model.Itinerary {
	sorted := slices.Clone(itineraries)
	if sorted == nil {
		sorted = []model.Itinerary{}
	}
	slices.SortStableFunc(sorted, func(a, b model.Itinerary) int {
		return cmp.Compare(a.DurationMinutes, b.DurationMinutes)
	})
	return sorted
}

// Best ranks by the unweighted sum of the min-max scaled price and the
// min-max scaled duration. A collapsed range scores zero.
func (e *Engine) Best(ctx context.Context, itineraries []model.Itinerary) ([]model.Itinerary, error) {
	if len(itineraries) == 0 {
		return []model.Itinerary{}, nil
	}

	rates, err := e.fetchRates(ctx)
	if err != nil {
		return nil, err
	}

	prices := make([]decimal.Decimal, len(itineraries))
	durations := make([]decimal.Decimal, len(itineraries))
	for i, it := range itineraries {
		prices[i] = e.normalizer.Normalize(it.Price, rates)
		durations[i] = decimal.NewFromInt(int64(it.DurationMinutes))
	}

	minPrice, maxPrice := decimal.Min(prices[0], prices[1:]...), decimal.Max(prices[0], prices[1:]...)
	minDuration, maxDuration := decimal.Min(durations[0], durations[1:]...), decimal.Max(durations[0], durations[1:]...)

	keyed := make([]keyedItinerary, len(itineraries))
	for i, it := range itineraries {
		score := minMaxScore(prices[i], minPrice, maxPrice).Add(minMaxScore(durations[i], minDuration, maxDuration))
		keyed[i] = keyedItinerary{itinerary: it, key: score}
	}
	return sortByKey(keyed), nil
}

func (e *Engine) fetchRates(ctx context.Context) (*model.ExchangeRates, error) {
	rates, err := e.rates.FetchRates(ctx, e.baseCurrency)
	if err != nil {
		var rfe *model.RateFetchError
		if !errors.As(err, &rfe) {
			err = &model.RateFetchError{Base: e.baseCurrency, Err: err}
		}
		return nil, err
	}
	if rates == nil {
		return nil, &model.RateFetchError{Base: e.baseCurrency, Err: errors.New("provider returned no rates")}
	}
	if rates.Base == "" {
		rates = &model.ExchangeRates{Base: e.baseCurrency, Rates: rates.Rates}
	}
	return rates, nil
}

func minMaxScore(v, lo, hi decimal.Decimal) decimal.Decimal {
	if hi.Equal(lo) {
		return decimal.Zero
	}
	return v.Sub(lo).Div(hi.Sub(lo))
}

// keyedItinerary orders unresolved entries after every resolved one,
// whatever their keys.
type keyedItinerary struct {
	itinerary  model.Itinerary
	key        decimal.Decimal
	unresolved bool
}

func sortByKey(keyed []keyedItinerary) []model.Itinerary {
	slices.SortStableFunc(keyed, func(a, b keyedItinerary) int {
		if a.unresolved != b.unresolved {
			if a.unresolved {
				return 1
			}
			return -1
		}
		return a.key.Cmp(b.key)
	})

	sorted := make([]model.Itinerary, len(keyed))
	for i, k := range keyed {
		sorted[i] = k.itinerary
	}
	return sorted
}
