// Package sink decides whether a log message is emitted and hands the
// formatted line to a platform console.
//
// Print is the default Sink. It applies the configured minimum level, builds
// the scope string and, when debug output is enabled, prefixes each message
// with a timestamp and thread label.
package sink

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Aman-CERP/applog/internal/logconfig"
	"github.com/Aman-CERP/applog/internal/severity"
)

// DefaultThread is the thread label used when the caller supplies none.
const DefaultThread = "main"

// TimestampLayout is the layout of the debug message prefix.
const TimestampLayout = "15:04:05.000"

// Location is an explicit call site supplied by the caller.
type Location struct {
	File   string
	Line   int
	Thread string
}

// IsZero reports whether no file was recorded.
func (l Location) IsZero() bool {
	return l.File == ""
}

// Sink receives a level and message and emits it.
// It returns the count reported by the underlying console, 0 when dropped.
type Sink interface {
	Println(level severity.Level, msg string, loc Location) int
}

// Console is the platform console logger boundary.
type Console interface {
	Println(level severity.Level, tag, msg string) int
	IsLoggable(tag string, level severity.Level) bool
}

// Print is the default Sink.
type Print struct {
	config  *logconfig.Config
	console Console
	now     func() time.Time
}

// NewPrint returns a Print gated by config and writing to console.
func NewPrint(config *logconfig.Config, console Console) *Print {
	return &Print{
		config:  config,
		console: console,
		now:     time.Now,
	}
}

// Console returns the console this sink writes to.
func (p *Print) Console() Console {
	return p.console
}

// Println implements Sink.
func (p *Print) Println(level severity.Level, msg string, loc Location) int {
	snap := p.config.Snapshot()
	if level < snap.MinimumLevel {
		return 0
	}
	return p.console.Println(level, ScopeString(snap, loc), p.processMessage(snap, msg, loc))
}

// processMessage adds the time and thread prefix when debug output is on.
func (p *Print) processMessage(snap logconfig.Snapshot, msg string, loc Location) string {
	if snap.MinimumLevel > severity.Debug {
		return msg
	}
	thread := loc.Thread
	if thread == "" {
		thread = DefaultThread
	}
	return fmt.Sprintf("%s %s %s", p.now().Format(TimestampLayout), thread, msg)
}

// ScopeString returns the tag a line is emitted under. With debug output on
// and a known call site it is "<scope>/<file>:<line>", otherwise the bare
// scope.
func ScopeString(snap logconfig.Snapshot, loc Location) string {
	if snap.MinimumLevel <= severity.Debug && !loc.IsZero() {
		return fmt.Sprintf("%s/%s:%d", snap.Scope, filepath.Base(loc.File), loc.Line)
	}
	return snap.Scope
}
