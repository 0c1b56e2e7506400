package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortingType(t *testing.T) {
	tests := []struct {
		input    string
		expected model.SortingType
		wantErr  bool
	}{
		{"cheapest", model.SortingCheapest, false},
		{"fastest", model.SortingFastest, false},
		{"best", model.SortingBest, false},
		{"Cheapest", "", true},
		{"invalid_type", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseSortingType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidSortingType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSortItinerariesRequest_Validate(t *testing.T) {
	valid := func() model.SortItinerariesRequest {
		return model.SortItinerariesRequest{
			SortingType: "best",
			Itineraries: []model.Itinerary{
				{ID: "a", DurationMinutes: 60, Price: model.Price{Amount: "10", Currency: "EUR"}},
				{ID: "b", DurationMinutes: 0, Price: model.Price{Amount: "not-a-number", Currency: "USD"}},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *model.SortItinerariesRequest)
		wantErr error
	}{
		{"valid request", func(r *model.SortItinerariesRequest) {}, nil},
		{"empty list is valid", func(r *model.SortItinerariesRequest) { r.Itineraries = []model.Itinerary{} }, nil},
		{"invalid sorting type", func(r *model.SortItinerariesRequest) { r.SortingType = "slowest" }, model.ErrInvalidSortingType},
		{"missing itineraries", func(r *model.SortItinerariesRequest) { r.Itineraries = nil }, model.ErrInvalidItinerary},
		{"empty id is valid", func(r *model.SortItinerariesRequest) { r.Itineraries[0].ID = "" }, nil},
		{"duplicate id", func(r *model.SortItinerariesRequest) { r.Itineraries[1].ID = "a" }, model.ErrInvalidItinerary},
		{"negative duration", func(r *model.SortItinerariesRequest) { r.Itineraries[0].DurationMinutes = -1 }, model.ErrInvalidItinerary},
		{"missing currency is valid", func(r *model.SortItinerariesRequest) { r.Itineraries[1].Price.Currency = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItinerary_JSONShape(t *testing.T) {
	in := `{"id":"moja_3","duration_minutes":10,"price":{"amount":"10.0","currency":"CZK"}}`

	var it model.Itinerary
	require.NoError(t, json.Unmarshal([]byte(in), &it))
	assert.Equal(t, "10.0", it.Price.Amount)

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestRateFetchError(t *testing.T) {
	cause := assert.AnError
	err := &model.RateFetchError{Base: "EUR", StatusCode: 503, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, (&model.RateFetchError{Base: "EUR", Err: cause}).Error(), "fetch EUR exchange rates")
}

func TestLogPartition(t *testing.T) {
	ts := time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "y2026m10", model.LogPartition(ts))
}
