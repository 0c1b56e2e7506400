package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSortingType = errors.New("invalid sorting type")
	ErrInvalidItinerary   = errors.New("invalid itinerary")
)

// RateFetchError reports that the exchange rate table could not be
// obtained. StatusCode is zero when no response was received.
type RateFetchError struct {
	Base       string
	StatusCode int
	Err        error
}

func (e *RateFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s exchange rates: status %d: %v", e.Base, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s exchange rates: %v", e.Base, e.Err)
}

func (e *RateFetchError) Unwrap() error {
	return e.Err
}
