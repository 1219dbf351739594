package cloth

import (
	"fmt"
	"time"
)

// Task is a periodic job on the simulation clock. The gap before each run
// is drawn afresh, so the period can jitter. Runs happen only inside
// Advance, on the caller's goroutine.
type Task struct {
	next     time.Duration
	interval func() time.Duration
	run      func(at time.Duration)
	stopped  bool
}

// NewTask schedules run to fire first at start plus one interval.
func NewTask(start time.Duration, interval func() time.Duration, run func(at time.Duration)) *Task {
	t := &Task{interval: interval, run: run}
	t.next = start + t.gap()
	return t
}

func (t *Task) gap() time.Duration {
	d := t.interval()
	if d <= 0 {
		panic(fmt.Sprintf("cloth: task interval must be positive, got %v", d))
	}
	return d
}

// Advance fires every run due at or before now, each with its own due time,
// and returns how many ran.
func (t *Task) Advance(now time.Duration) int {
	runs := 0
	for !t.stopped && t.next <= now {
		at := t.next
		t.next += t.gap()
		t.run(at)
		runs++
	}
	return runs
}

// Next returns the due time of the next run.
func (t *Task) Next() time.Duration {
	return t.next
}

// Stop cancels all future runs. It is safe to call more than once.
func (t *Task) Stop() {
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *Task) Stopped() bool {
	return t.stopped
}
