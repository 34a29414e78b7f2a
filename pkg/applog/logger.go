package applog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Aman-CERP/applog/internal/logconfig"
	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/severity"
	"github.com/Aman-CERP/applog/internal/sink"
)

// Level is a log priority.
type Level = severity.Level

// Levels, least to most severe.
const (
	Verbose = severity.Verbose
	Debug   = severity.Debug
	Info    = severity.Info
	Warn    = severity.Warn
	Error   = severity.Error
	Assert  = severity.Assert
)

// Config is the live logging configuration.
type Config = logconfig.Config

// Sink emits messages that pass its own filtering.
type Sink = sink.Sink

// Console is the platform console boundary used by the default sink.
type Console = sink.Console

// Location is an explicit call site.
type Location = sink.Location

// LevelToString maps a level to its name, "UNKNOWN" when out of range.
func LevelToString(level Level) string {
	return severity.ToString(level)
}

type sinkBox struct{ s sink.Sink }

// Logger is the logging facade. It is safe for concurrent use.
type Logger struct {
	config  *logconfig.Config
	console sink.Console
	sink    atomic.Pointer[sinkBox]
	writer  *persist.Writer
	app     AppContext

	ownsWriter bool
}

// New builds a Logger. When opts.App is set and opts.Config is not, the
// configuration is derived from the app; a failure to read the app's
// metadata is logged at ERROR and the default configuration is used.
func New(opts Options) (*Logger, error) {
	l := &Logger{
		config:  opts.Config,
		console: opts.Console,
		writer:  opts.Writer,
		app:     opts.App,
	}

	var configErr error
	derived := false
	if l.config == nil {
		if opts.App != nil {
			l.config, configErr = logconfig.FromApp(opts.App)
			derived = true
		} else {
			l.config = logconfig.New()
		}
	}

	if l.console == nil {
		l.console = sink.NewStderrConsole()
	}

	if opts.Sink != nil {
		l.sink.Store(&sinkBox{s: opts.Sink})
	} else {
		l.sink.Store(&sinkBox{s: sink.NewPrint(l.config, l.console)})
	}

	if l.writer == nil {
		popts := opts.Persist
		if opts.LogName != "" {
			popts.LogName = opts.LogName
		}
		if popts.OnError == nil {
			popts.OnError = l.reportPersistError
		}
		w, err := persist.NewWriter(popts)
		if err != nil {
			return nil, fmt.Errorf("failed to create log writer: %w", err)
		}
		l.writer = w
		l.ownsWriter = true
	}

	if derived {
		if configErr != nil {
			l.E("Error configuring logger", Tag(opts.App.PackageName()), Err(configErr))
		} else {
			l.D(fmt.Sprintf("Configuring Logging, minimum log level is %s", l.config.Level()))
		}
	}

	return l, nil
}

// Config returns the live configuration.
func (l *Logger) Config() *logconfig.Config {
	return l.config
}

// Sink returns the current sink.
func (l *Logger) Sink() sink.Sink {
	return l.sink.Load().s
}

// SetSink replaces the sink for all later calls. Nil restores the default
// gated console sink.
func (l *Logger) SetSink(s sink.Sink) {
	if s == nil {
		s = sink.NewPrint(l.config, l.console)
	}
	l.sink.Store(&sinkBox{s: s})
}

// App returns the logger's stored application context.
func (l *Logger) App() AppContext {
	return l.app
}

// LogName returns the persisted log file name.
func (l *Logger) LogName() string {
	return l.writer.LogName()
}

// LogPath returns the log file path for the stored app, or "" without one.
func (l *Logger) LogPath() string {
	if l.app == nil || l.app.FilesDir() == "" {
		return ""
	}
	return l.writer.Path(l.app.FilesDir())
}

// Stats returns the persister's counters.
func (l *Logger) Stats() persist.Stats {
	return l.writer.Stats()
}

// IsDebugEnabled reports whether DEBUG lines reach the console.
func (l *Logger) IsDebugEnabled() bool {
	return l.config.IsDebugEnabled()
}

// IsVerboseEnabled reports whether VERBOSE lines reach the console.
func (l *Logger) IsVerboseEnabled() bool {
	return l.config.IsVerboseEnabled()
}

// IsLoggable asks the console whether tag is loggable at level.
func (l *Logger) IsLoggable(tag string, level Level) bool {
	return l.console.IsLoggable(tag, level)
}

// Println persists the message and passes it to the sink. It returns the
// sink's count, 0 when the message was filtered.
func (l *Logger) Println(level Level, msg string, opts ...CallOption) int {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	msg = composeMessage(msg, o.err)

	app := l.app
	if o.hasApp {
		app = o.app
	}
	if app != nil {
		tag := sink.ScopeString(l.config.Snapshot(), o.loc)
		l.writer.Persist(app.FilesDir(), severity.ToString(level), tag, msg)
	}

	return l.Sink().Println(level, msg, o.loc)
}

// V logs at VERBOSE.
func (l *Logger) V(msg string, opts ...CallOption) int { return l.Println(Verbose, msg, opts...) }

// D logs at DEBUG.
func (l *Logger) D(msg string, opts ...CallOption) int { return l.Println(Debug, msg, opts...) }

// I logs at INFO.
func (l *Logger) I(msg string, opts ...CallOption) int { return l.Println(Info, msg, opts...) }

// W logs at WARN.
func (l *Logger) W(msg string, opts ...CallOption) int { return l.Println(Warn, msg, opts...) }

// E logs at ERROR.
func (l *Logger) E(msg string, opts ...CallOption) int { return l.Println(Error, msg, opts...) }

// A logs at ASSERT.
func (l *Logger) A(msg string, opts ...CallOption) int { return l.Println(Assert, msg, opts...) }

// Vf logs a formatted message at VERBOSE.
func (l *Logger) Vf(format string, args ...any) int {
	return l.Println(Verbose, fmt.Sprintf(format, args...))
}

// Df logs a formatted message at DEBUG.
func (l *Logger) Df(format string, args ...any) int {
	return l.Println(Debug, fmt.Sprintf(format, args...))
}

// If logs a formatted message at INFO.
func (l *Logger) If(format string, args ...any) int {
	return l.Println(Info, fmt.Sprintf(format, args...))
}

// Wf logs a formatted message at WARN.
func (l *Logger) Wf(format string, args ...any) int {
	return l.Println(Warn, fmt.Sprintf(format, args...))
}

// Ef logs a formatted message at ERROR.
func (l *Logger) Ef(format string, args ...any) int {
	return l.Println(Error, fmt.Sprintf(format, args...))
}

// Af logs a formatted message at ASSERT.
func (l *Logger) Af(format string, args ...any) int {
	return l.Println(Assert, fmt.Sprintf(format, args...))
}

// Verr logs err and its stack trace at VERBOSE.
func (l *Logger) Verr(err error, opts ...CallOption) int { return l.logErr(Verbose, err, opts) }

// Derr logs err and its stack trace at DEBUG.
func (l *Logger) Derr(err error, opts ...CallOption) int { return l.logErr(Debug, err, opts) }

// Ierr logs err and its stack trace at INFO.
func (l *Logger) Ierr(err error, opts ...CallOption) int { return l.logErr(Info, err, opts) }

// Werr logs err and its stack trace at WARN.
func (l *Logger) Werr(err error, opts ...CallOption) int { return l.logErr(Warn, err, opts) }

// Eerr logs err and its stack trace at ERROR.
func (l *Logger) Eerr(err error, opts ...CallOption) int { return l.logErr(Error, err, opts) }

// Aerr logs err and its stack trace at ASSERT.
func (l *Logger) Aerr(err error, opts ...CallOption) int { return l.logErr(Assert, err, opts) }

func (l *Logger) logErr(level Level, err error, opts []CallOption) int {
	return l.Println(level, "", append(opts, Err(err))...)
}

// Flush waits until every record logged so far is on disk.
func (l *Logger) Flush(ctx context.Context) error {
	return l.writer.Flush(ctx)
}

// Close drains and closes the persister if the Logger owns it. Logging
// after Close still reaches the sink but is no longer persisted.
func (l *Logger) Close(ctx context.Context) error {
	if !l.ownsWriter {
		return nil
	}
	return l.writer.Close(ctx)
}

// reportPersistError sends persistence failures to the sink at DEBUG.
// They are not persisted themselves.
func (l *Logger) reportPersistError(err error) {
	l.Sink().Println(Debug, "Log\n"+StackTraceString(err), sink.Location{})
}

// StackTraceString renders err with any stack trace it carries, as
// errors from github.com/pkg/errors do. It returns "" for nil.
func StackTraceString(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}

func composeMessage(msg string, err error) string {
	if err == nil {
		return msg
	}
	if msg == "" {
		return StackTraceString(err)
	}
	return msg + "\n" + StackTraceString(err)
}
