package applog

import (
	"runtime"

	"github.com/Aman-CERP/applog/internal/logconfig"
	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/sink"
)

// Options configures a Logger. The zero value logs to stderr and persists
// nothing.
type Options struct {
	// App supplies storage and metadata. Without it nothing is persisted
	// unless a call passes App.
	App AppContext

	// LogName is the file name under <filesDir>/log.
	LogName string

	// Config overrides the configuration otherwise derived from App.
	Config *logconfig.Config

	// Console is where the default sink writes. Defaults to stderr.
	Console sink.Console

	// Sink replaces the default gated sink entirely.
	Sink sink.Sink

	// Writer is a persister shared with other loggers. When nil the Logger
	// creates and owns one from Persist.
	Writer *persist.Writer

	// Persist configures the owned persister. LogName above takes
	// precedence over Persist.LogName.
	Persist persist.Options
}

type callOptions struct {
	tag    string
	err    error
	app    AppContext
	hasApp bool
	loc    sink.Location
}

// CallOption adjusts a single log call.
type CallOption func(*callOptions)

// Tag names the component the message comes from. It is accepted for
// compatibility and does not change where or whether the line is emitted.
func Tag(tag string) CallOption {
	return func(o *callOptions) { o.tag = tag }
}

// Err appends err and, for errors that carry one, its stack trace.
func Err(err error) CallOption {
	return func(o *callOptions) { o.err = err }
}

// App persists this call under app instead of the logger's app.
// A nil app skips persistence for the call.
func App(app AppContext) CallOption {
	return func(o *callOptions) {
		o.app = app
		o.hasApp = true
	}
}

// At records an explicit call site.
func At(file string, line int) CallOption {
	return func(o *callOptions) {
		o.loc.File = file
		o.loc.Line = line
	}
}

// Here records the location of the expression that calls Here.
func Here() CallOption {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return func(*callOptions) {}
	}
	return At(file, line)
}

// Thread sets the thread label shown in debug output.
func Thread(name string) CallOption {
	return func(o *callOptions) { o.loc.Thread = name }
}
