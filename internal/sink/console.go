package sink

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/Aman-CERP/applog/internal/severity"
	"github.com/Aman-CERP/applog/internal/ui"
)

// DefaultLoggableLevel is the per-tag threshold IsLoggable uses for tags
// without an override.
const DefaultLoggableLevel = severity.Info

// WriterConsole writes logcat-style "L/TAG: message" lines to an io.Writer.
// Multi-line messages get the prefix on every line.
type WriterConsole struct {
	mu         sync.Mutex
	out        io.Writer
	color      bool
	styles     ui.Styles
	thresholds map[string]severity.Level
}

// WriterOption configures a WriterConsole.
type WriterOption func(*WriterConsole)

// WithColor forces colored output on or off.
func WithColor(enabled bool) WriterOption {
	return func(c *WriterConsole) { c.color = enabled }
}

// NewWriterConsole creates a console writing to out. Color is enabled when
// out is a terminal.
func NewWriterConsole(out io.Writer, opts ...WriterOption) *WriterConsole {
	c := &WriterConsole{
		out:        out,
		color:      IsTerminal(out),
		thresholds: make(map[string]severity.Level),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.color {
		c.styles = ui.DefaultStyles(ColorRenderer(out))
	} else {
		c.styles = ui.NoColorStyles()
	}
	return c
}

// ColorRenderer returns a renderer for out that emits ANSI colors even when
// out is not a terminal.
func ColorRenderer(out io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if !IsTerminal(out) {
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// NewStderrConsole returns a WriterConsole on os.Stderr.
func NewStderrConsole() *WriterConsole {
	return NewWriterConsole(os.Stderr)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetTagLevel overrides the IsLoggable threshold for one tag.
func (c *WriterConsole) SetTagLevel(tag string, level severity.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thresholds[tag] = level
}

// IsLoggable reports whether tag is loggable at level.
func (c *WriterConsole) IsLoggable(tag string, level severity.Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	min, ok := c.thresholds[tag]
	if !ok {
		min = DefaultLoggableLevel
	}
	return level >= min
}

// Println writes the message and returns the number of bytes written.
func (c *WriterConsole) Println(level severity.Level, tag, msg string) int {
	prefix := level.Letter() + "/" + tag + ": "
	if c.color {
		if _, ok := c.styles.Levels[level]; ok {
			prefix = c.styles.Level(level).Render(level.Letter()) + c.styles.Tag.Render("/"+tag+":") + " "
		}
	}

	var sb strings.Builder
	for _, line := range strings.Split(msg, "\n") {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := io.WriteString(c.out, sb.String())
	return n
}

// SlogConsole routes console output into a slog.Logger.
type SlogConsole struct {
	logger *slog.Logger
}

// NewSlogConsole wraps logger. A nil logger uses slog.Default().
func NewSlogConsole(logger *slog.Logger) *SlogConsole {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogConsole{logger: logger}
}

// Println logs msg at the mapped slog level with the tag as an attribute.
// It returns the message length, or 0 when the handler drops the level.
func (c *SlogConsole) Println(level severity.Level, tag, msg string) int {
	ctx := context.Background()
	if !c.logger.Enabled(ctx, level.ToSlog()) {
		return 0
	}
	c.logger.Log(ctx, level.ToSlog(), msg,
		slog.String("tag", tag),
		slog.String("priority", level.String()))
	return len(msg)
}

// IsLoggable reports whether the slog handler accepts level.
func (c *SlogConsole) IsLoggable(_ string, level severity.Level) bool {
	return c.logger.Enabled(context.Background(), level.ToSlog())
}

// Discard is a console that drops everything.
type Discard struct{}

// Println implements Console.
func (Discard) Println(severity.Level, string, string) int { return 0 }

// IsLoggable implements Console.
func (Discard) IsLoggable(string, severity.Level) bool { return false }
