package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity, ordered DEBUG < INFO < WARN < ERROR.
type Level int32

const (
	// DEBUG is the most verbose level.
	DEBUG Level = iota
	// INFO is the default level.
	INFO
	// WARN marks a condition worth a human's attention but not fatal to the
	// current operation.
	WARN
	// ERROR marks a failed operation.
	ERROR
)

// String renders the level the way the rest of the package's config
// parsing and tests expect: title case ("Debug", "Info", "Warn", "Error").
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return "Unknown"
	}
}

// AsZap converts a Level to its zapcore equivalent.
func (l Level) AsZap() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LevelFromString parses a case-insensitive level name into a Level.
func LevelFromString(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// AtomicLevel is a concurrency-safe, mutable Level, analogous to zap's own
// AtomicLevel but over this package's own Level type so per-logger level
// changes (via the registry/config path) don't require a zap dependency at
// every call site.
type AtomicLevel struct {
	v atomic.Int32
}

// NewAtomicLevelAt returns an AtomicLevel initialized to l.
func NewAtomicLevelAt(l Level) AtomicLevel {
	var a AtomicLevel
	a.v.Store(int32(l))
	return a
}

// Get returns the current level.
func (a *AtomicLevel) Get() Level {
	return Level(a.v.Load())
}

// Set installs a new level.
func (a *AtomicLevel) Set(l Level) {
	a.v.Store(int32(l))
}

// GlobalLogLevel is consulted by impl.AsZap so that a zap.Logger obtained
// via Desugar/AsZap reflects runtime changes to the debug flag.
var GlobalLogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
