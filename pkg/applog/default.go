package applog

import (
	"sync/atomic"

	"github.com/Aman-CERP/applog/internal/persist"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	l, err := New(Options{Persist: persist.Options{Synchronous: true}})
	if err != nil {
		panic(err)
	}
	defaultLogger.Store(l)
}

// Default returns the process default Logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault installs l as the process default. Nil is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(l)
}

// Init builds a Logger for app writing to logName and installs it as the
// process default. The caller owns the returned Logger and closes it on
// shutdown.
func Init(app AppContext, logName string) (*Logger, error) {
	l, err := New(Options{App: app, LogName: logName})
	if err != nil {
		return nil, err
	}
	SetDefault(l)
	return l, nil
}

// V logs at VERBOSE through the default Logger.
func V(msg string, opts ...CallOption) int { return Default().V(msg, opts...) }

// D logs at DEBUG through the default Logger.
func D(msg string, opts ...CallOption) int { return Default().D(msg, opts...) }

// I logs at INFO through the default Logger.
func I(msg string, opts ...CallOption) int { return Default().I(msg, opts...) }

// W logs at WARN through the default Logger.
func W(msg string, opts ...CallOption) int { return Default().W(msg, opts...) }

// E logs at ERROR through the default Logger.
func E(msg string, opts ...CallOption) int { return Default().E(msg, opts...) }

// A logs at ASSERT through the default Logger.
func A(msg string, opts ...CallOption) int { return Default().A(msg, opts...) }

// Println logs msg at level through the default Logger.
func Println(level Level, msg string, opts ...CallOption) int {
	return Default().Println(level, msg, opts...)
}

// Vf logs a formatted message at VERBOSE through the default Logger.
func Vf(format string, args ...any) int { return Default().Vf(format, args...) }

// Df logs a formatted message at DEBUG through the default Logger.
func Df(format string, args ...any) int { return Default().Df(format, args...) }

// If logs a formatted message at INFO through the default Logger.
func If(format string, args ...any) int { return Default().If(format, args...) }

// Wf logs a formatted message at WARN through the default Logger.
func Wf(format string, args ...any) int { return Default().Wf(format, args...) }

// Ef logs a formatted message at ERROR through the default Logger.
func Ef(format string, args ...any) int { return Default().Ef(format, args...) }

// Af logs a formatted message at ASSERT through the default Logger.
func Af(format string, args ...any) int { return Default().Af(format, args...) }

// Verr logs err at VERBOSE through the default Logger.
func Verr(err error, opts ...CallOption) int { return Default().Verr(err, opts...) }

// Derr logs err at DEBUG through the default Logger.
func Derr(err error, opts ...CallOption) int { return Default().Derr(err, opts...) }

// Ierr logs err at INFO through the default Logger.
func Ierr(err error, opts ...CallOption) int { return Default().Ierr(err, opts...) }

// Werr logs err at WARN through the default Logger.
func Werr(err error, opts ...CallOption) int { return Default().Werr(err, opts...) }

// Eerr logs err at ERROR through the default Logger.
func Eerr(err error, opts ...CallOption) int { return Default().Eerr(err, opts...) }

// Aerr logs err at ASSERT through the default Logger.
func Aerr(err error, opts ...CallOption) int { return Default().Aerr(err, opts...) }

// IsLoggable reports whether the default Logger's console accepts level
// for tag.
func IsLoggable(tag string, level Level) bool { return Default().IsLoggable(tag, level) }

// IsDebugEnabled reports whether the default Logger emits DEBUG lines.
func IsDebugEnabled() bool { return Default().IsDebugEnabled() }

// IsVerboseEnabled reports whether the default Logger emits VERBOSE lines.
func IsVerboseEnabled() bool { return Default().IsVerboseEnabled() }

// GetConfig returns the default Logger's configuration.
func GetConfig() *Config { return Default().Config() }

// SetSink replaces the default Logger's sink.
func SetSink(s Sink) { Default().SetSink(s) }
