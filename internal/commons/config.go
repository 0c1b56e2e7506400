package commons

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ServerPort         uint16        `env:"SERVER_PORT" env-default:"8080"`
	ExchangeRateAPIKey string        `env:"EXCHANGE_RATE_API_KEY"`
	ExchangeRateURL    string        `env:"EXCHANGE_RATE_BASE_URL" env-default:"https://v6.exchangerate-api.com"`
	BaseCurrency       string        `env:"BASE_CURRENCY" env-default:"EUR"`
	RateFetchTimeout   time.Duration `env:"RATE_FETCH_TIMEOUT" env-default:"5s"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" env-default:"10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" env-default:"20"`
	TrustProxyHeaders  bool          `env:"TRUST_PROXY_HEADERS" env-default:"false"`
	LogSink            string        `env:"LOG_SINK" env-default:"stdout"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPass          string        `env:"REDIS_PASSWORD"`
	Postgres           PostgresConfig
	PostgresConn       string
}

type PostgresConfig struct {
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"POSTGRES_HOST"`
	Port     string `env:"POSTGRES_PORT"`
	Name     string `env:"POSTGRES_NAME"`
}

func LoadConfig() (Config, error) {
	var config Config
	var errors []string

	if err := cleanenv.ReadEnv(&config); err != nil {
		errors = append(errors, fmt.Sprintf("invalid environment: %s", err))
	}

	if config.ExchangeRateAPIKey == "" {
		errors = append(errors, "EXCHANGE_RATE_API_KEY is not set")
	}
	if config.ServerPort == 0 {
		errors = append(errors, "SERVER_PORT must be greater than zero")
	}

	config.BaseCurrency = strings.ToUpper(strings.TrimSpace(config.BaseCurrency))
	if l := len(config.BaseCurrency); l < MinimumCurrencyLength || l > AllowedCurrencyLength {
		errors = append(errors, fmt.Sprintf("BASE_CURRENCY must be between %d and %d characters", MinimumCurrencyLength, AllowedCurrencyLength))
	}
	if config.RateFetchTimeout <= 0 {
		errors = append(errors, "RATE_FETCH_TIMEOUT must be positive")
	}
	if config.RateLimitRPS <= 0 || config.RateLimitBurst <= 0 {
		errors = append(errors, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	switch config.LogSink {
	case repository.LogSinkStdout:
	case repository.LogSinkRedis:
		if config.RedisAddr == "" {
			errors = append(errors, "REDIS_ADDR is not set")
		}
	case repository.LogSinkPostgres:
		errors = append(errors, config.Postgres.Missing()...)
		config.PostgresConn = config.Postgres.ConnString()
	default:
		errors = append(errors, fmt.Sprintf("unknown LOG_SINK %q", config.LogSink))
	}

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Println("Configuration Error:", err)
		}
		return Config{}, fmt.Errorf("configuration errors occurred")
	}

	return config, nil
}

func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.Name)
}

// Missing lists the POSTGRES_* variables that are not set.
func (p PostgresConfig) Missing() []string {
	var errors []string
	for _, v := range []struct{ name, value string }{
		{"POSTGRES_USER", p.User},
		{"POSTGRES_PASSWORD", p.Password},
		{"POSTGRES_HOST", p.Host},
		{"POSTGRES_PORT", p.Port},
		{"POSTGRES_NAME", p.Name},
	} {
		if v.value == "" {
			errors = append(errors, v.name+" is not set")
		}
	}
	return errors
}
