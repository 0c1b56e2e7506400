package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/model"
)

const DefaultBaseURL = "https://v6.exchangerate-api.com"

// ExchangeRateAPIClient talks to the exchangerate-api.com v6 "latest"
// endpoint. It never retries: a failed fetch fails the request that needed it.
type ExchangeRateAPIClient struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

type Option func(*ExchangeRateAPIClient)

func WithBaseURL(baseURL string) Option {
	return func(c *ExchangeRateAPIClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *ExchangeRateAPIClient) {
		c.timeout = timeout
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *ExchangeRateAPIClient) {
		c.client = client
	}
}

func NewExchangeRateAPIClient(apiKey string, opts ...Option) *ExchangeRateAPIClient {
	c := &ExchangeRateAPIClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: commons.DefaultRateFetchTimeout,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type latestRatesResponse struct {
	Result          string                 `json:"result"`
	ErrorType       string                 `json:"error-type"`
	BaseCode        string                 `json:"base_code"`
	ConversionRates map[string]json.Number `json:"conversion_rates"`
}

func (c *ExchangeRateAPIClient) FetchRates(ctx context.Context, base string) (*model.ExchangeRates, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &model.RateFetchError{Base: base, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", c.timeout, context.DeadlineExceeded)
		}
		return nil, &model.RateFetchError{Base: base, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &model.RateFetchError{
			Base:       base,
			StatusCode: resp.StatusCode,
			Err:        errors.New("unexpected response status"),
		}
	}

	var payload latestRatesResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, &model.RateFetchError{Base: base, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, &model.RateFetchError{Base: base, StatusCode: resp.StatusCode, Err: fmt.Errorf("upstream error: %s", payload.ErrorType)}
	}
	if len(payload.ConversionRates) == 0 {
		return nil, &model.RateFetchError{Base: base, StatusCode: resp.StatusCode, Err: errors.New("response has no conversion rates")}
	}

	rates := &model.ExchangeRates{
		Base:  base,
		Rates: make(map[string]string, len(payload.ConversionRates)),
	}
	for code, rate := range payload.ConversionRates {
		rates.Rates[strings.ToUpper(code)] = rate.String()
	}
	return rates, nil
}
