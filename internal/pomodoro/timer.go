package pomodoro

import (
	"context"
	"time"
)

// DefaultTick is the countdown cadence. Remaining time is always whole
// seconds; a finer tick only redraws more often.
const DefaultTick = time.Second

// Display receives the frames of one countdown.
type Display interface {
	Begin(stage Stage)
	Frame(stage Stage, p Progress)
	// Finish is called once. p.Done() is false when the countdown was
	// interrupted.
	Finish(stage Stage, p Progress)
}

// Cue signals that a stage finished. Implementations must not fail.
type Cue interface {
	Signal(kind StageKind)
}

// NopCue is used where the environment has no way to make a sound.
type NopCue struct{}

func (NopCue) Signal(StageKind) {}

// Timer counts a single stage down to zero.
type Timer struct {
	clock   Clock
	tick    time.Duration
	display Display
	cue     Cue
}

func NewTimer(clock Clock, tick time.Duration, display Display, cue Cue) *Timer {
	if clock == nil {
		clock = SystemClock()
	}
	if tick <= 0 {
		tick = DefaultTick
	}
	if cue == nil {
		cue = NopCue{}
	}
	return &Timer{
		clock:   clock,
		tick:    tick,
		display: display,
		cue:     cue,
	}
}

// Run blocks until the stage has fully elapsed or ctx is done. It returns
// the whole seconds elapsed; the error is non-nil only on interruption.
func (t *Timer) Run(ctx context.Context, stage Stage) (int, error) {
	total := stage.TotalSeconds
	if total < 1 {
		total = 1
	}
	limit := time.Duration(total) * time.Second

	start := t.clock.Now()
	t.display.Begin(stage)
	for {
		since := t.clock.Since(start)
		p := ProgressAt(int(since/time.Second), total)
		t.display.Frame(stage, p)
		if p.Done() {
			break
		}

		// Never sleep past the end of the stage.
		wait := t.tick
		if left := limit - since; left < wait {
			wait = left
		}
		if err := t.clock.Sleep(ctx, wait); err != nil {
			t.display.Finish(stage, p)
			return p.ElapsedSeconds, err
		}
	}

	t.display.Finish(stage, ProgressAt(total, total))
	t.cue.Signal(stage.Kind)
	return total, nil
}
