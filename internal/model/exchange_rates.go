package model

// ExchangeRates maps a currency code to the number of units of that
// currency worth one unit of Base. Rates keep their wire representation and
// are parsed at lookup time.
type ExchangeRates struct {
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}
