package sink

import (
	"sync"

	"github.com/Aman-CERP/applog/internal/severity"
)

// Call is one captured emission.
type Call struct {
	Level severity.Level
	Tag   string
	Msg   string
	Loc   Location
}

// Recorder captures calls. It can stand in for a Sink through
// Println and for a Console through AsConsole.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// Result is returned from every Println; zero means len(msg).
	Result int
	// Loggable is returned from IsLoggable.
	Loggable bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Loggable: true}
}

// Println implements Sink.
func (r *Recorder) Println(level severity.Level, msg string, loc Location) int {
	return r.record(Call{Level: level, Msg: msg, Loc: loc})
}

// AsConsole returns a Console view that records into r.
func (r *Recorder) AsConsole() Console {
	return recorderConsole{r}
}

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(c Call) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if r.Result != 0 {
		return r.Result
	}
	return len(c.Msg)
}

type recorderConsole struct{ r *Recorder }

func (c recorderConsole) Println(level severity.Level, tag, msg string) int {
	return c.r.record(Call{Level: level, Tag: tag, Msg: msg})
}

func (c recorderConsole) IsLoggable(string, severity.Level) bool {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	return c.r.Loggable
}
