package plot

import (
	"slices"
	"time"
)

// Scheduler is the host frame queue. Callbacks run on the thread that drives
// the queue, one at a time.
type Scheduler interface {
	Now() time.Time
	PostDelayed(f func(), delay time.Duration)
	// CancelAll drops every pending callback.
	CancelAll()
}

type task struct {
	at  time.Time
	seq uint64
	f   func()
}

// Timeline is a Scheduler whose clock only moves when Advance is called. A
// Gio window advances it to gtx.Now every frame; tests advance it by hand.
type Timeline struct {
	now     time.Time
	seq     uint64
	tasks   []task
	running bool
}

var _ Scheduler = (*Timeline)(nil)

// NewTimeline returns a timeline starting at now.
func NewTimeline(now time.Time) *Timeline {
	return &Timeline{now: now}
}

func (t *Timeline) Now() time.Time { return t.now }

func (t *Timeline) PostDelayed(f func(), delay time.Duration) {
	t.seq++
	t.tasks = append(t.tasks, task{at: t.now.Add(max(delay, 0)), seq: t.seq, f: f})
}

func (t *Timeline) CancelAll() {
	t.tasks = t.tasks[:0]
}

// Pending returns the number of queued callbacks.
func (t *Timeline) Pending() int { return len(t.tasks) }

// Next returns the earliest deadline, if any.
func (t *Timeline) Next() (time.Time, bool) {
	if len(t.tasks) == 0 {
		return time.Time{}, false
	}
	return t.tasks[t.earliest()].at, true
}

func (t *Timeline) earliest() int {
	best := 0
	for i, tk := range t.tasks[1:] {
		b := t.tasks[best]
		if tk.at.Before(b.at) || (tk.at.Equal(b.at) && tk.seq < b.seq) {
			best = i + 1
		}
	}
	return best
}

// Advance moves the clock to now, running every callback that falls due in
// deadline order. The clock reads each callback's deadline while it runs.
// Calls from inside a callback are ignored.
func (t *Timeline) Advance(now time.Time) {
	if t.running {
		return
	}
	t.running = true
	defer func() { t.running = false }()
	for len(t.tasks) > 0 {
		i := t.earliest()
		tk := t.tasks[i]
		if tk.at.After(now) {
			break
		}
		t.tasks = slices.Delete(t.tasks, i, i+1)
		if tk.at.After(t.now) {
			t.now = tk.at
		}
		tk.f()
	}
	if now.After(t.now) {
		t.now = now
	}
}

// AdvanceBy is Advance relative to the current clock.
func (t *Timeline) AdvanceBy(d time.Duration) {
	t.Advance(t.now.Add(d))
}
