// Package logconfig holds the runtime logging configuration: the minimum
// level that reaches the console and the scope label attached to each line.
//
// A Config is safe for concurrent use. Its state lives in an immutable
// snapshot that is swapped atomically, so readers never observe a partial
// update.
package logconfig

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/severity"
)

// DefaultLevel is the permissive level used before any app metadata is read.
const DefaultLevel = severity.Verbose

// ReleaseLevel is the level used for non-debuggable apps.
const ReleaseLevel = severity.Info

// AppInfo is the slice of application metadata the configuration reads.
type AppInfo interface {
	PackageName() string
	Debuggable() (bool, error)
}

// Snapshot is one immutable configuration value.
type Snapshot struct {
	MinimumLevel severity.Level
	PackageName  string
	Scope        string
}

// Config is the live, swappable configuration.
type Config struct {
	current atomic.Pointer[Snapshot]
}

// New returns a configuration with the permissive default level and an
// empty scope.
func New() *Config {
	return NewFromSnapshot(Snapshot{MinimumLevel: DefaultLevel})
}

// NewFromSnapshot returns a configuration seeded with s.
func NewFromSnapshot(s Snapshot) *Config {
	c := &Config{}
	c.current.Store(&s)
	return c
}

// FromApp derives a configuration from application metadata.
//
// Debuggable apps log from VERBOSE, others from INFO. The scope is the
// uppercased package name. If the debuggable flag cannot be read the
// returned Config keeps the default level and an empty scope, and the error
// is returned next to it; callers report it and carry on with the returned
// Config.
func FromApp(app AppInfo) (*Config, error) {
	if app == nil {
		return New(), errors.New(errors.ErrCodeAppMetadata, "no application context", nil)
	}

	pkg := app.PackageName()
	snap := Snapshot{
		MinimumLevel: DefaultLevel,
		PackageName:  pkg,
	}

	debuggable, err := app.Debuggable()
	if err != nil {
		return NewFromSnapshot(snap), errors.New(errors.ErrCodeAppMetadata,
			fmt.Sprintf("failed to read application info for %q", pkg), err)
	}

	snap.Scope = ScopeFor(pkg)
	if debuggable {
		snap.MinimumLevel = DefaultLevel
	} else {
		snap.MinimumLevel = ReleaseLevel
	}
	return NewFromSnapshot(snap), nil
}

// ScopeFor returns the scope label for a package name.
func ScopeFor(packageName string) string {
	return strings.ToUpper(packageName)
}

// Snapshot returns the current configuration value.
func (c *Config) Snapshot() Snapshot {
	return *c.current.Load()
}

// Level returns the minimum level that reaches the console.
func (c *Config) Level() severity.Level {
	return c.current.Load().MinimumLevel
}

// SetLevel replaces the minimum level.
func (c *Config) SetLevel(level severity.Level) {
	c.update(func(s *Snapshot) { s.MinimumLevel = level })
}

// Scope returns the scope label.
func (c *Config) Scope() string {
	return c.current.Load().Scope
}

// SetScope replaces the scope label.
func (c *Config) SetScope(scope string) {
	c.update(func(s *Snapshot) { s.Scope = scope })
}

// PackageName returns the package the configuration was derived from.
func (c *Config) PackageName() string {
	return c.current.Load().PackageName
}

// Replace swaps in a whole new snapshot.
func (c *Config) Replace(s Snapshot) {
	c.current.Store(&s)
}

// IsDebugEnabled reports whether DEBUG messages reach the console.
func (c *Config) IsDebugEnabled() bool {
	return c.Level() <= severity.Debug
}

// IsVerboseEnabled reports whether VERBOSE messages reach the console.
func (c *Config) IsVerboseEnabled() bool {
	return c.Level() <= severity.Verbose
}

// Enabled reports whether a message at level passes the threshold.
func (c *Config) Enabled(level severity.Level) bool {
	return level >= c.Level()
}

// update applies fn to a copy of the current snapshot and publishes it,
// retrying if another writer got there first.
func (c *Config) update(fn func(*Snapshot)) {
	for {
		old := c.current.Load()
		next := *old
		fn(&next)
		if c.current.CompareAndSwap(old, &next) {
			return
		}
	}
}
