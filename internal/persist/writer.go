package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/Aman-CERP/applog/internal/errors"
)

const (
	// DefaultLogName is the file name used when none is configured.
	DefaultLogName = "app.log"
	// DefaultQueueSize bounds the number of records waiting for the writer.
	DefaultQueueSize = 1024
	// DefaultMaxOpenFiles bounds the number of cached open log files.
	DefaultMaxOpenFiles = 8
)

// Options configures a Writer.
type Options struct {
	// LogName is the file name inside <filesDir>/log.
	LogName string

	// QueueSize bounds pending records. When full, new records are dropped.
	QueueSize int

	// MaxOpenFiles bounds how many log files stay open at once.
	MaxOpenFiles int

	// FlushInterval syncs open files periodically. Zero syncs after every
	// write.
	FlushInterval time.Duration

	// Synchronous writes on the caller's goroutine instead of the queue.
	Synchronous bool

	// Zone is used to render record timestamps. Nil means DefaultZone.
	Zone *time.Location

	// OnError receives every persistence failure. Errors never reach the
	// Persist caller. It must not call back into the Writer.
	OnError func(error)

	// Now returns the record time. Nil means time.Now.
	Now func() time.Time
}

// WithDefaults fills zero fields.
func (o Options) WithDefaults() Options {
	if o.LogName == "" {
		o.LogName = DefaultLogName
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.MaxOpenFiles <= 0 {
		o.MaxOpenFiles = DefaultMaxOpenFiles
	}
	if o.Zone == nil {
		o.Zone = DefaultZone
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.OnError == nil {
		o.OnError = func(error) {}
	}
	return o
}

// Stats is a point-in-time view of a Writer's counters.
type Stats struct {
	Written uint64
	Dropped uint64
	Failed  uint64
	Pending int
}

type request struct {
	path  string
	data  []byte
	flush chan struct{}
}

// Writer owns every open log file and appends records to them from a
// single goroutine. Persist never blocks on disk I/O and never returns an
// error.
type Writer struct {
	opts Options

	queue chan request
	quit  chan struct{}
	done  chan struct{}

	// closeMu orders enqueues against Close.
	closeMu sync.RWMutex
	closed  bool

	// fileMu guards handles in synchronous mode and during Close.
	fileMu  sync.Mutex
	handles *lru.Cache[string, *AppendWriter]

	written atomic.Uint64
	dropped atomic.Uint64
	failed  atomic.Uint64
}

// NewWriter creates a Writer and, unless Synchronous is set, starts its
// goroutine. Call Close to drain and release files.
func NewWriter(opts Options) (*Writer, error) {
	w, err := newWriter(opts)
	if err != nil {
		return nil, err
	}
	if !w.opts.Synchronous {
		go w.loop()
	}
	return w, nil
}

// newWriter builds a Writer without starting its goroutine.
func newWriter(opts Options) (*Writer, error) {
	opts = opts.WithDefaults()

	w := &Writer{
		opts: opts,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	handles, err := lru.NewWithEvict[string, *AppendWriter](opts.MaxOpenFiles, w.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	w.handles = handles

	if opts.Synchronous {
		close(w.done)
		return w, nil
	}

	w.queue = make(chan request, opts.QueueSize)
	return w, nil
}

// LogName returns the configured file name.
func (w *Writer) LogName() string {
	return w.opts.LogName
}

// Path returns the log file path for filesDir.
func (w *Writer) Path(filesDir string) string {
	return LogPath(filesDir, w.opts.LogName)
}

// Persist appends a record for filesDir. An empty filesDir means no
// storage is available and the call is a no-op.
func (w *Writer) Persist(filesDir, levelName, tag, msg string) {
	if filesDir == "" {
		return
	}

	req := request{
		path: w.Path(filesDir),
		data: []byte(FormatRecord(w.opts.Now(), w.opts.Zone, levelName, tag, msg)),
	}

	w.closeMu.RLock()
	defer w.closeMu.RUnlock()

	if w.closed {
		w.dropped.Add(1)
		return
	}

	if w.opts.Synchronous {
		w.fileMu.Lock()
		w.write(req)
		w.fileMu.Unlock()
		return
	}

	select {
	case w.queue <- req:
	default:
		// Counted as dropped only, not failed.
		w.dropped.Add(1)
		w.opts.OnError(errors.New(errors.ErrCodeQueueFull, "log queue full, record dropped", nil).
			WithDetail("path", req.path))
	}
}

// Flush blocks until every record persisted before the call is written and
// synced, or ctx is done.
func (w *Writer) Flush(ctx context.Context) error {
	if w.opts.Synchronous {
		w.fileMu.Lock()
		defer w.fileMu.Unlock()
		w.syncAll()
		return nil
	}

	marker := request{flush: make(chan struct{})}

	w.closeMu.RLock()
	if w.closed {
		w.closeMu.RUnlock()
		return errors.New(errors.ErrCodeWriterClosed, "log writer closed", nil)
	}
	select {
	case w.queue <- marker:
		w.closeMu.RUnlock()
	case <-ctx.Done():
		w.closeMu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-marker.flush:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting records, drains the queue and closes every file.
// It returns ctx.Err() if ctx ends before the drain completes; the drain
// and the file release still finish in the background.
func (w *Writer) Close(ctx context.Context) error {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return nil
	}
	w.closed = true
	w.closeMu.Unlock()

	if !w.opts.Synchronous {
		close(w.quit)
		select {
		case <-w.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.fileMu.Lock()
	defer w.fileMu.Unlock()
	w.handles.Purge()
	return nil
}

// Stats returns the current counters.
func (w *Writer) Stats() Stats {
	return Stats{
		Written: w.written.Load(),
		Dropped: w.dropped.Load(),
		Failed:  w.failed.Load(),
		Pending: len(w.queue),
	}
}

// loop is the single writer goroutine.
func (w *Writer) loop() {
	defer close(w.done)

	var tick <-chan time.Time
	if w.opts.FlushInterval > 0 {
		ticker := time.NewTicker(w.opts.FlushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case req := <-w.queue:
			w.handle(req)
		case <-tick:
			w.withFiles(w.syncAll)
		case <-w.quit:
			for {
				select {
				case req := <-w.queue:
					w.handle(req)
				default:
					w.withFiles(func() {
						w.syncAll()
						w.handles.Purge()
					})
					return
				}
			}
		}
	}
}

func (w *Writer) handle(req request) {
	if req.flush != nil {
		w.withFiles(w.syncAll)
		close(req.flush)
		return
	}
	w.withFiles(func() { w.write(req) })
}

func (w *Writer) withFiles(fn func()) {
	w.fileMu.Lock()
	defer w.fileMu.Unlock()
	fn()
}

// write appends one record. fileMu must be held.
func (w *Writer) write(req request) {
	h, err := w.open(req.path)
	if err != nil {
		w.report(err)
		return
	}

	if _, err := h.Write(req.data); err != nil {
		w.report(errors.New(errors.ErrCodeLogWrite, "failed to write log record", pkgerrors.WithStack(err)).
			WithDetail("path", req.path))
		// Reopen on the next record.
		w.handles.Remove(req.path)
		return
	}
	w.written.Add(1)
}

// open returns the cached handle for path, creating the directory and file
// on first use.
func (w *Writer) open(path string) (*AppendWriter, error) {
	if h, ok := w.handles.Get(path); ok {
		return h, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(errors.ErrCodeLogDir, "failed to create log directory", pkgerrors.WithStack(err)).
			WithDetail("path", filepath.Dir(path))
	}

	h, err := NewAppendWriter(path, w.opts.FlushInterval == 0)
	if err != nil {
		return nil, errors.New(errors.ErrCodeLogOpen, "failed to open log file", pkgerrors.WithStack(err)).
			WithDetail("path", path)
	}
	w.handles.Add(path, h)
	return h, nil
}

// syncAll syncs every open file. fileMu must be held.
func (w *Writer) syncAll() {
	for _, h := range w.handles.Values() {
		if err := h.Sync(); err != nil {
			w.report(errors.New(errors.ErrCodeLogSync, "failed to sync log file", pkgerrors.WithStack(err)).
				WithDetail("path", h.Path()))
		}
	}
}

func (w *Writer) onEvict(path string, h *AppendWriter) {
	_ = h.Sync()
	if err := h.Close(); err != nil {
		w.report(errors.New(errors.ErrCodeLogClose, "failed to close log file", pkgerrors.WithStack(err)).
			WithDetail("path", path))
	}
}

func (w *Writer) report(err error) {
	w.failed.Add(1)
	w.opts.OnError(err)
}
