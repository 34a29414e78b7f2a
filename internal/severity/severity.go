// Package severity defines the ordered log levels used across applog.
//
// The numeric values match the Android platform priority constants so that
// ranks carried over from existing call sites keep their meaning.
package severity

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aman-CERP/applog/internal/errors"
)

// Level is a log priority. Higher values are more severe.
type Level int

const (
	// Verbose is the most detailed level.
	Verbose Level = 2
	// Debug is for diagnostics useful during development.
	Debug Level = 3
	// Info is for normal operational messages.
	Info Level = 4
	// Warn is for unexpected but recoverable situations.
	Warn Level = 5
	// Error is for failed operations.
	Error Level = 6
	// Assert is for conditions that should never happen.
	Assert Level = 7
)

// Unknown is the name returned for values outside the enumeration.
const Unknown = "UNKNOWN"

// All returns every level from least to most severe.
func All() []Level {
	return []Level{Verbose, Debug, Info, Warn, Error, Assert}
}

// ToString maps a level to its canonical name.
// Values outside the enumeration map to "UNKNOWN".
func ToString(l Level) string {
	switch l {
	case Verbose:
		return "VERBOSE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Assert:
		return "ASSERT"
	default:
		return Unknown
	}
}

// String implements fmt.Stringer.
func (l Level) String() string {
	return ToString(l)
}

// Valid reports whether l is one of the six defined levels.
func (l Level) Valid() bool {
	return l >= Verbose && l <= Assert
}

// AtLeast reports whether l is as severe as min or more.
func (l Level) AtLeast(min Level) bool {
	return l >= min
}

// Letter returns the single-letter logcat abbreviation.
func (l Level) Letter() string {
	switch l {
	case Verbose:
		return "V"
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warn:
		return "W"
	case Error:
		return "E"
	case Assert:
		return "A"
	default:
		return "?"
	}
}

// ToSlog maps the level onto the closest slog level.
// Verbose sits below slog's debug and Assert above its error.
func (l Level) ToSlog() slog.Level {
	switch {
	case l <= Verbose:
		return slog.LevelDebug - 4
	case l == Debug:
		return slog.LevelDebug
	case l == Info:
		return slog.LevelInfo
	case l == Warn:
		return slog.LevelWarn
	case l == Error:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// Parse converts a level name to a Level. It accepts canonical names,
// single letters and a few common aliases, ignoring case.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "v", "trace":
		return Verbose, nil
	case "debug", "d":
		return Debug, nil
	case "info", "i":
		return Info, nil
	case "warn", "warning", "w":
		return Warn, nil
	case "error", "e":
		return Error, nil
	case "assert", "a", "fatal", "wtf":
		return Assert, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidLevel,
			fmt.Sprintf("unknown log level %q", s), nil).
			WithSuggestion("use one of verbose, debug, info, warn, error, assert")
	}
}

// MustParse is like Parse but panics on an unknown name.
// Intended for package-level defaults.
func MustParse(s string) Level {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}
