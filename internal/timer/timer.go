package timer

import (
	"fmt"
	"log/slog"
	"time"
)

type State uint8

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// Timer measures play time across pause/resume cycles. The zero value is
// not usable; construct with New.
type Timer struct {
	start       time.Time // zero unless running
	accumulated time.Duration
	state       State

	now    func() time.Time
	logger *slog.Logger
}

func New(logger *slog.Logger) *Timer {
	return NewWithClock(logger, time.Now)
}

func NewWithClock(logger *slog.Logger, now func() time.Time) *Timer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Timer{now: now, logger: logger}
}

func (t *Timer) Start() {
	if t.state == Running {
		t.logger.Warn("attempted to start timer that is already running")
		return
	}
	t.logger.Debug("starting timer", slog.String("from", t.state.String()))
	t.start = t.now()
	t.state = Running
}

func (t *Timer) Pause() {
	if t.state != Running {
		t.logger.Warn("attempted to pause timer that is not running")
		return
	}
	d := t.sinceStart()
	t.accumulated += d
	t.start = time.Time{}
	t.state = Paused
	t.logger.Debug("paused timer", slog.Duration("added", d), slog.Duration("elapsed", t.accumulated))
}

func (t *Timer) Reset() {
	t.logger.Debug("resetting timer")
	t.start = time.Time{}
	t.accumulated = 0
	t.state = Stopped
}

func (t *Timer) Elapsed() time.Duration {
	if t.state != Running {
		return t.accumulated
	}
	return t.accumulated + t.sinceStart()
}

func (t *Timer) Running() bool {
	return t.state == Running
}

func (t *Timer) State() State {
	return t.state
}

// panics [AssertionError]
func (t *Timer) sinceStart() time.Duration {
	if t.start.IsZero() {
		panic(AssertionError{"timer is running but has no start instant"})
	}
	d := t.now().Sub(t.start)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) String() string {
	return fmt.Sprintf("timer(%s, elapsed=%s)", t.State(), t.Elapsed())
}
