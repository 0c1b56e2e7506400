package ranking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/Lutefd/itinerary-sorter/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (*model.ExchangeRates, error) {
	args := m.Called(ctx, base)
	if args.Get(0) != nil {
		return args.Get(0).(*model.ExchangeRates), args.Error(1)
	}
	return nil, args.Error(1)
}

func itinerary(id string, duration int, amount, currency string) model.Itinerary {
	return model.Itinerary{ID: id, DurationMinutes: duration, Price: model.Price{Amount: amount, Currency: currency}}
}

func ids(its []model.Itinerary) []string {
	out := make([]string, len(its))
	for i, it := range its {
		out[i] = it.ID
	}
	return out
}

func newEngine(rates map[string]string) (*ranking.Engine, *MockRateProvider) {
	provider := new(MockRateProvider)
	if rates != nil {
		provider.On("FetchRates", mock.Anything, "EUR").Return(eurRates(rates), nil)
	}
	return ranking.NewEngine(provider, "EUR", nil), provider
}

func TestEngine_Cheapest(t *testing.T) {
	engine, provider := newEngine(map[string]string{"USD": "1.2"})
	input := []model.Itinerary{
		itinerary("1", 120, "100", "USD"),
		itinerary("2", 150, "80", "EUR"),
	}

	sorted, err := engine.Cheapest(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(sorted))
	assert.Equal(t, []string{"1", "2"}, ids(input), "input must not be reordered")
	provider.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestEngine_Cheapest_UnresolvedCurrencySortsLast(t *testing.T) {
	engine, _ := newEngine(map[string]string{"USD": "1.2", "GBP": "0"})
	input := []model.Itinerary{
		itinerary("unknown", 10, "1", "XYZ"),
		itinerary("broken-amount", 10, "n/a", "EUR"),
		itinerary("expensive", 10, "900000", "USD"),
		itinerary("bad-rate", 10, "1", "GBP"),
		itinerary("cheap", 10, "5", "EUR"),
	}

	sorted, err := engine.Cheapest(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "expensive", "unknown", "broken-amount", "bad-rate"}, ids(sorted))
}

func TestEngine_Cheapest_HugeResolvablePriceBeatsUnknownCurrency(t *testing.T) {
	engine, _ := newEngine(map[string]string{"USD": "0.001"})
	input := []model.Itinerary{
		itinerary("unknown", 10, "1", "XYZ"),
		itinerary("no-currency", 10, "1", ""),
		itinerary("huge", 10, "9000000000000000", "USD"),
		itinerary("cheap", 10, "5", "EUR"),
	}

	sorted, err := engine.Cheapest(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "huge", "unknown", "no-currency"}, ids(sorted))
}

func TestEngine_ExtremeExponentsSortLast(t *testing.T) {
	rates := map[string]string{"USD": "1.2", "TNY": "1e-200000000"}
	input := []model.Itinerary{
		itinerary("huge", 10, "1e200000000", "EUR"),
		itinerary("tiny", 20, "1e-200000000", "EUR"),
		itinerary("tiny-rate", 30, "10", "TNY"),
		itinerary("ok", 40, "100", "USD"),
	}

	t.Run("cheapest", func(t *testing.T) {
		engine, _ := newEngine(rates)

		sorted, err := engine.Cheapest(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, []string{"ok", "huge", "tiny", "tiny-rate"}, ids(sorted))
	})

	t.Run("best", func(t *testing.T) {
		engine, _ := newEngine(rates)

		sorted, err := engine.Best(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, []string{"huge", "ok", "tiny", "tiny-rate"}, ids(sorted))
	})
}

func TestEngine_Cheapest_StableOnTies(t *testing.T) {
	engine, _ := newEngine(map[string]string{"USD": "2"})
	input := []model.Itinerary{
		itinerary("a", 30, "10", "EUR"),
		itinerary("b", 20, "20", "USD"),
		itinerary("c", 10, "10.00", "EUR"),
	}

	sorted, err := engine.Cheapest(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(sorted))
}

func TestEngine_Cheapest_Empty(t *testing.T) {
	engine, provider := newEngine(nil)

	sorted, err := engine.Cheapest(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, sorted)
	assert.NotNil(t, sorted)
	provider.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestEngine_Fastest(t *testing.T) {
	engine, provider := newEngine(nil)
	input := []model.Itinerary{
		itinerary("1", 120, "100", "EUR"),
		itinerary("2", 100, "150", "EUR"),
	}

	sorted := engine.Fastest(input)

	assert.Equal(t, []string{"2", "1"}, ids(sorted))
	provider.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestEngine_Fastest_StableOnTies(t *testing.T) {
	engine, _ := newEngine(nil)
	input := []model.Itinerary{
		itinerary("a", 60, "1", "EUR"),
		itinerary("b", 30, "1", "EUR"),
		itinerary("c", 60, "1", "EUR"),
		itinerary("d", 0, "1", "EUR"),
		itinerary("e", 30, "1", "EUR"),
	}

	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, ids(engine.Fastest(input)))
}

func TestEngine_Best(t *testing.T) {
	engine, provider := newEngine(map[string]string{})
	input := []model.Itinerary{
		itinerary("1", 120, "100", "EUR"),
		itinerary("2", 150, "80", "EUR"),
		itinerary("3", 121, "85", "EUR"),
	}

	sorted, err := engine.Best(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "3", sorted[0].ID)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(sorted))
	provider.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestEngine_Best_Empty(t *testing.T) {
	engine, provider := newEngine(nil)

	sorted, err := engine.Best(context.Background(), []model.Itinerary{})

	require.NoError(t, err)
	assert.Empty(t, sorted)
	provider.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestEngine_Best_SingleItem(t *testing.T) {
	engine, _ := newEngine(map[string]string{})
	only := itinerary("only", 42, "12.34", "EUR")

	sorted, err := engine.Best(context.Background(), []model.Itinerary{only})

	require.NoError(t, err)
	assert.Equal(t, []model.Itinerary{only}, sorted)
}

func TestEngine_Best_CollapsedRangesKeepInputOrder(t *testing.T) {
	engine, _ := newEngine(map[string]string{})
	input := []model.Itinerary{
		itinerary("x", 60, "10", "EUR"),
		itinerary("y", 60, "10", "EUR"),
		itinerary("z", 60, "10", "EUR"),
	}

	sorted, err := engine.Best(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, ids(sorted))
}

func TestEngine_Best_UnresolvedPriceRanksBehindEqualDuration(t *testing.T) {
	engine, _ := newEngine(map[string]string{})
	input := []model.Itinerary{
		itinerary("unknown", 60, "1", "XYZ"),
		itinerary("known", 60, "500", "EUR"),
	}

	sorted, err := engine.Best(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"known", "unknown"}, ids(sorted))
}

func TestEngine_RateFetchFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"typed failure is passed through", &model.RateFetchError{Base: "EUR", StatusCode: 500, Err: errors.New("upstream")}},
		{"untyped failure is wrapped", errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockRateProvider)
			provider.On("FetchRates", mock.Anything, "EUR").Return(nil, tt.err)
			engine := ranking.NewEngine(provider, "EUR", nil)
			input := []model.Itinerary{itinerary("1", 10, "1", "EUR")}

			for _, sortingType := range []model.SortingType{model.SortingCheapest, model.SortingBest} {
				sorted, err := engine.Sort(context.Background(), sortingType, input)

				var rfe *model.RateFetchError
				assert.ErrorAs(t, err, &rfe)
				assert.Nil(t, sorted, "no partial results")
			}

			sorted, err := engine.Sort(context.Background(), model.SortingFastest, input)
			assert.NoError(t, err, "fastest does not depend on rates")
			assert.Equal(t, []string{"1"}, ids(sorted))
		})
	}
}

func TestEngine_Sort_InvalidSortingType(t *testing.T) {
	engine, provider := newEngine(nil)

	_, err := engine.Sort(context.Background(), model.SortingType("slowest"), []model.Itinerary{itinerary("1", 1, "1", "EUR")})

	assert.ErrorIs(t, err, model.ErrInvalidSortingType)
	provider.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestEngine_Sort_IsPermutation(t *testing.T) {
	engine, _ := newEngine(map[string]string{"CZK": "25", "PLN": "4.3"})
	input := []model.Itinerary{
		itinerary("moja_1", 1, "1", "EUR"),
		itinerary("moja_2", 25, "25", "EUR"),
		itinerary("moja_3", 10, "10.0", "CZK"),
		itinerary("moja_4", 3, "40.0", "PLN"),
		itinerary("moja_5", 3, "7", "???"),
	}

	for _, sortingType := range []model.SortingType{model.SortingCheapest, model.SortingFastest, model.SortingBest} {
		t.Run(string(sortingType), func(t *testing.T) {
			sorted, err := engine.Sort(context.Background(), sortingType, input)

			require.NoError(t, err)
			assert.ElementsMatch(t, input, sorted)
		})
	}
}
