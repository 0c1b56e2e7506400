package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelError LogLevel = "ERROR"
)

const LogSourceAPI = "itinerary-sorter"

type Log struct {
	ID        uuid.UUID `json:"id"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// LogPartition names the monthly partition a log written at t belongs to,
// e.g. "y2026m10".
func LogPartition(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("y%04dm%02d", t.Year(), t.Month())
}
