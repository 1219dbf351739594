package cloth

import (
	"testing"
	"time"
)

func TestTaskFiresAtDueTimes(t *testing.T) {
	var fired []time.Duration
	task := NewTask(0, func() time.Duration { return 100 * time.Millisecond }, func(at time.Duration) {
		fired = append(fired, at)
	})

	if n := task.Advance(350 * time.Millisecond); n != 3 {
		t.Fatalf("Advance ran %d times, want 3", n)
	}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	for i, at := range want {
		if fired[i] != at {
			t.Errorf("run %d at %v, want %v", i, fired[i], at)
		}
	}
	if task.Next() != 400*time.Millisecond {
		t.Errorf("Next() = %v, want 400ms", task.Next())
	}
}

func TestTaskStop(t *testing.T) {
	runs := 0
	task := NewTask(0, func() time.Duration { return 10 * time.Millisecond }, func(time.Duration) {
		runs++
	})
	task.Advance(25 * time.Millisecond)
	task.Stop()
	task.Stop()

	if n := task.Advance(time.Second); n != 0 {
		t.Errorf("stopped task ran %d times", n)
	}
	if runs != 2 || !task.Stopped() {
		t.Errorf("runs = %d, stopped = %v", runs, task.Stopped())
	}
}

func TestTaskStopFromRun(t *testing.T) {
	var task *Task
	runs := 0
	task = NewTask(0, func() time.Duration { return time.Millisecond }, func(time.Duration) {
		runs++
		task.Stop()
	})

	task.Advance(time.Second)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}
