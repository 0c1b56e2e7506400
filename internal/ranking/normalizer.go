// Package ranking orders itineraries by price, duration or a balance of
// both. Prices are compared after conversion into a single base currency.
package ranking

import (
	"fmt"
	"strings"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/shopspring/decimal"
)

// Unresolved is the normalized price of an itinerary whose price cannot be
// converted. Any converted value at or above it is clamped to it, so it is
// never smaller than a resolvable price.
var Unresolved = decimal.New(1, 15)

// Logger receives the conversion trail. It carries no behaviour.
type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

type Normalizer struct {
	log Logger
}

func NewNormalizer(log Logger) *Normalizer {
	if log == nil {
		log = nopLogger{}
	}
	return &Normalizer{log: log}
}

// Comparable decimals have magnitude (digits left of the point, negative
// for leading fractional zeros) within these bounds. Anything outside is
// treated as unresolvable before any arithmetic rescales it.
const (
	maxMagnitude = 16
	minMagnitude = -30
)

// Normalize converts price into rates.Base. It never fails: prices that
// cannot be converted, or convert to Unresolved or more, map to Unresolved.
func (n *Normalizer) Normalize(price model.Price, rates *model.ExchangeRates) decimal.Decimal {
	converted, ok := n.Convert(price, rates)
	if !ok {
		return Unresolved
	}
	if converted.GreaterThanOrEqual(Unresolved) {
		n.log.Errorf("Converted amount %s %s exceeds the comparable range", converted, rates.Base)
		return Unresolved
	}
	return converted
}

// Convert converts price into rates.Base without clamping. ok is false when
// the amount or the rate is missing, unparsable or out of range.
func (n *Normalizer) Convert(price model.Price, rates *model.ExchangeRates) (decimal.Decimal, bool) {
	base := strings.ToUpper(strings.TrimSpace(rates.Base))
	currency := strings.ToUpper(strings.TrimSpace(price.Currency))

	amount, err := parseBounded(price.Amount)
	if err != nil {
		n.log.Errorf("Unusable amount %q %s: %v", price.Amount, price.Currency, err)
		return decimal.Decimal{}, false
	}

	converted := amount
	if currency != base {
		rawRate, ok := rates.Rates[currency]
		if !ok {
			n.log.Errorf("Rate for currency %q not found in exchange rates", price.Currency)
			return decimal.Decimal{}, false
		}
		rate, err := parseBounded(rawRate)
		if err != nil {
			n.log.Errorf("Unusable rate %q for currency %s: %v", rawRate, price.Currency, err)
			return decimal.Decimal{}, false
		}
		if !rate.IsPositive() {
			n.log.Errorf("Non-positive rate %s for currency %s", rate, price.Currency)
			return decimal.Decimal{}, false
		}
		converted = amount.Div(rate)
	}

	n.log.Infof("Converted %s %s to %s %s", price.Amount, price.Currency, converted, base)
	return converted, true
}

func parseBounded(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxMagnitude || magnitude < minMagnitude {
		return decimal.Decimal{}, fmt.Errorf("magnitude %d outside [%d, %d]", magnitude, minMagnitude, maxMagnitude)
	}
	return d, nil
}
