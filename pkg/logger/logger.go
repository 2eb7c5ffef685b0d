// Package logger is the process-wide structured logger. Calls take a message
// followed by alternating key/value pairs:
//
//	logger.Info("server starting", "address", addr)
//	logger.Error("failed to find business", "business_id", id, "error", err)
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures output for the given environment: console and debug level
// for "development", JSON and info level otherwise.
func Init(environment string) {
	if environment == "development" {
		setLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger())
		return
	}

	setLogger(zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger())
}

// SetOutput redirects JSON output to w at the given level.
func SetOutput(w io.Writer, level zerolog.Level) {
	setLogger(zerolog.New(w).Level(level).With().Timestamp().Logger())
}

func setLogger(l zerolog.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(msg string, args ...any) {
	emit(current().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(current().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(current().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(current().Error(), msg, args)
}

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	emit(current().Fatal(), msg, args)
}

// emit turns key/value pairs into fields. A bare error is logged under
// "error"; any other unpaired value gets a positional key.
func emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}

	for i := 0; i < len(args); {
		switch v := args[i].(type) {
		case string:
			if i+1 < len(args) {
				e = field(e, v, args[i+1])
				i += 2
				continue
			}
			e = e.Str("detail", v)
		case error:
			e = e.Err(v)
		default:
			e = field(e, fmt.Sprintf("arg%d", i), v)
		}
		i++
	}

	e.Msg(msg)
}

func field(e *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case error:
		return e.AnErr(key, v)
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case float64:
		return e.Float64(key, v)
	case bool:
		return e.Bool(key, v)
	case time.Duration:
		return e.Dur(key, v)
	default:
		return e.Interface(key, v)
	}
}
