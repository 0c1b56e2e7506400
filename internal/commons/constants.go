package commons

import "time"

const (
	AllowedCurrencyLength   = 5
	MinimumCurrencyLength   = 3
	DefaultRateFetchTimeout = 5 * time.Second
	MaxRequestBodyBytes     = 1 << 20
	ServerIdleTimeout       = time.Minute
	ServerReadTimeout       = 10 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerShutdownTimeout   = 10 * time.Second
	LoggerShutdownTimeout   = 5 * time.Second
	RateLimiterIdleTTL      = 3 * time.Minute
)
