package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/Lutefd/itinerary-sorter/internal/repository"
	"github.com/google/uuid"
)

var (
	InfoLogger       *log.Logger
	ErrorLogger      *log.Logger
	loggerBufferSize = 1000

	mu      sync.RWMutex
	logChan chan model.Log
	logRepo repository.LogRepository
	drained chan struct{}
	logSrc  = model.LogSourceAPI
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLogger starts persisting log entries to repo in the background.
// Before it is called, and after Shutdown, entries only go to the console.
func InitLogger(repo repository.LogRepository) {
	mu.Lock()
	defer mu.Unlock()

	logRepo = repo
	logChan = make(chan model.Log, loggerBufferSize)
	drained = make(chan struct{})
	go processLogs(logChan, repo, drained)
}

func processLogs(entries <-chan model.Log, repo repository.LogRepository, done chan<- struct{}) {
	defer close(done)
	for logEntry := range entries {
		if err := repo.SaveLog(context.Background(), logEntry); err != nil {
			ErrorLogger.Printf("failed to save log: %v", err)
		}
	}
}

func logAsync(level model.LogLevel, message string) {
	logEntry := model.Log{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Source:    logSrc,
	}

	mu.RLock()
	if logChan != nil {
		select {
		case logChan <- logEntry:
		default:
			ErrorLogger.Printf("log channel full. Dropping log: %v", logEntry)
		}
	}
	mu.RUnlock()

	if level == model.LogLevelInfo {
		InfoLogger.Output(3, message)
	} else {
		ErrorLogger.Output(3, message)
	}
}

func Info(v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprintf(format, v...))
}

func Error(v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprintf(format, v...))
}

// Shutdown stops accepting entries, waits for the queued ones to be saved
// and closes the repository.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	entries, repo, done := logChan, logRepo, drained
	logChan, logRepo, drained = nil, nil, nil
	mu.Unlock()

	if entries == nil {
		return nil
	}
	close(entries)

	select {
	case <-done:
		return repo.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sink hands the package level functions to components that take their
// logger as a dependency.
type Sink struct{}

func (Sink) Infof(format string, v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprintf(format, v...))
}

func (Sink) Errorf(format string, v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprintf(format, v...))
}
