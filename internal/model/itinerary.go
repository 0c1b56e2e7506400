package model

import "fmt"

type SortingType string

const (
	SortingCheapest SortingType = "cheapest"
	SortingFastest  SortingType = "fastest"
	SortingBest     SortingType = "best"
)

func ParseSortingType(s string) (SortingType, error) {
	switch st := SortingType(s); st {
	case SortingCheapest, SortingFastest, SortingBest:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortingType, s)
	}
}

// Price keeps the amount as text so no precision is lost between the
// client and the response.
type Price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Itinerary struct {
	ID              string `json:"id"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           Price  `json:"price"`
}

type SortItinerariesRequest struct {
	SortingType string      `json:"sorting_type"`
	Itineraries []Itinerary `json:"itineraries"`
}

type SortItinerariesResponse struct {
	SortingType       SortingType `json:"sorting_type"`
	SortedItineraries []Itinerary `json:"sorted_itineraries"`
}

// Validate checks the request shape. Prices are not checked here: an
// unreadable amount or an unknown currency only pushes the itinerary to the
// end of price based orderings.
func (r SortItinerariesRequest) Validate() error {
	if _, err := ParseSortingType(r.SortingType); err != nil {
		return err
	}
	if r.Itineraries == nil {
		return fmt.Errorf("%w: itineraries is required", ErrInvalidItinerary)
	}

	seen := make(map[string]struct{}, len(r.Itineraries))
	for i, it := range r.Itineraries {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: itineraries[%d]: duplicate id %q", ErrInvalidItinerary, i, it.ID)
		}
		seen[it.ID] = struct{}{}

		if it.DurationMinutes < 0 {
			return fmt.Errorf("%w: itineraries[%d]: duration_minutes must be non-negative", ErrInvalidItinerary, i)
		}
	}
	return nil
}
