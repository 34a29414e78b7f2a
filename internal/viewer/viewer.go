package viewer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/severity"
	"github.com/Aman-CERP/applog/internal/ui"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 100 * time.Millisecond

// Config configures the log viewer.
type Config struct {
	MinLevel     severity.Level // Zero shows every record
	Pattern      *regexp.Regexp // Matched against the raw record
	NoColor      bool
	Zone         *time.Location
	PollInterval time.Duration
	ForcePolling bool
}

// Viewer provides log viewing and filtering capabilities.
type Viewer struct {
	config Config
	out    io.Writer
	styles ui.Styles
}

// NewViewer creates a new log viewer printing to out.
func NewViewer(cfg Config, out io.Writer) *Viewer {
	if cfg.Zone == nil {
		cfg.Zone = persist.DefaultZone
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	styles := ui.NoColorStyles()
	if !cfg.NoColor {
		styles = ui.DefaultStyles(lipgloss.NewRenderer(out))
	}
	return &Viewer{config: cfg, out: out, styles: styles}
}

// Tail returns the last n matching records of the file at path.
// n <= 0 returns all of them.
func (v *Viewer) Tail(path string, n int) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeLogRead, "failed to open log file", err).
			WithDetail("path", path)
	}
	defer func() { _ = file.Close() }()

	all, err := ParseRecords(file, v.config.Zone)
	if err != nil {
		return nil, errors.New(errors.ErrCodeLogRead, "failed to read log file", err).
			WithDetail("path", path)
	}

	var records []Record
	for _, r := range all {
		if v.Matches(r) {
			records = append(records, r)
		}
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// Follow sends records appended to path after the call until ctx is done.
// It watches the file with fsnotify and polls when a watcher cannot be set up.
func (v *Viewer) Follow(ctx context.Context, path string, records chan<- Record) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.New(errors.ErrCodeLogRead, "failed to open log file", err).
			WithDetail("path", path)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return errors.New(errors.ErrCodeLogRead, "failed to seek to end", err).
			WithDetail("path", path)
	}

	t := &tailer{
		viewer: v,
		reader: bufio.NewReader(file),
		parser: NewParser(v.config.Zone),
		out:    records,
	}

	if v.config.ForcePolling {
		return t.poll(ctx)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return t.poll(ctx)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return t.poll(ctx)
	}

	// Pick up anything written between Seek and Add.
	if !t.drain(ctx) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && !t.drain(ctx) {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.New(errors.ErrCodeLogRead, "watch failed", err).
				WithDetail("path", path)
		}
	}
}

// Matches reports whether r passes the level and pattern filters.
func (v *Viewer) Matches(r Record) bool {
	if v.config.MinLevel != 0 && r.Level < v.config.MinLevel {
		return false
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(r.Raw) {
		return false
	}
	return true
}

// FormatRecord formats a record for display.
func (v *Viewer) FormatRecord(r Record) string {
	if !r.IsValid {
		return r.Raw
	}

	timestamp := v.styles.Dim.Render(r.Time.Format("2006-01-02 15:04:05"))
	level := v.styles.Level(r.Level).Render(fmt.Sprintf("%-7s", r.LevelName))
	tag := v.styles.Tag.Render(r.Tag + ":")

	return fmt.Sprintf("%s %s %s %s", timestamp, level, tag, r.Msg)
}

// Print prints records to the output.
func (v *Viewer) Print(records []Record) {
	for _, r := range records {
		_, _ = fmt.Fprintln(v.out, v.FormatRecord(r))
	}
}

// tailer turns appended bytes into records.
type tailer struct {
	viewer  *Viewer
	reader  *bufio.Reader
	parser  *Parser
	partial string
	out     chan<- Record
}

func (t *tailer) poll(ctx context.Context) error {
	ticker := time.NewTicker(t.viewer.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !t.drain(ctx) {
				return nil
			}
		}
	}
}

// drain reads every complete line available. A record is emitted once no
// more data is pending, since each record is appended in a single write.
// It returns false when ctx is done.
func (t *tailer) drain(ctx context.Context) bool {
	for {
		chunk, err := t.reader.ReadString('\n')
		t.partial += chunk
		if err != nil {
			break
		}
		line := strings.TrimSuffix(t.partial, "\n")
		t.partial = ""
		if r, ok := t.parser.Feed(line); ok && !t.emit(ctx, r) {
			return false
		}
	}

	if t.partial == "" {
		if r, ok := t.parser.Flush(); ok && !t.emit(ctx, r) {
			return false
		}
	}
	return true
}

func (t *tailer) emit(ctx context.Context, r Record) bool {
	if !t.viewer.Matches(r) {
		return true
	}
	select {
	case t.out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
