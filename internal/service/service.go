package service

import (
	"context"

	"github.com/Lutefd/itinerary-sorter/internal/model"
)

type ItineraryServiceInterface interface {
	Sort(ctx context.Context, sortingType string, itineraries []model.Itinerary) (model.SortItinerariesResponse, error)
}
