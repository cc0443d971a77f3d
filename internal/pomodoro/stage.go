package pomodoro

import (
	"fmt"
	"time"
)

// StageKind identifies which part of the cycle a stage belongs to.
type StageKind int

const (
	KindWork StageKind = iota
	KindShortBreak
	KindLongBreak
)

var kindNames = map[StageKind]string{
	KindWork:       "work",
	KindShortBreak: "short_break",
	KindLongBreak:  "long_break",
}

func (k StageKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsBreak reports whether the stage is a rest period.
func (k StageKind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// Stage is one timed phase of the cycle.
type Stage struct {
	Kind         StageKind
	Label        string
	TotalSeconds int
}

// NewStage builds a stage from a duration in whole minutes.
func NewStage(kind StageKind, label string, minutes int) Stage {
	return Stage{
		Kind:         kind,
		Label:        label,
		TotalSeconds: minutes * 60,
	}
}

func (s Stage) Duration() time.Duration {
	return time.Duration(s.TotalSeconds) * time.Second
}

// Progress is the countdown state of a stage at one tick.
type Progress struct {
	ElapsedSeconds   int
	TotalSeconds     int
	RemainingSeconds int
	Fraction         float64
}

// ProgressAt clamps elapsed into [0, total] and derives the rest.
func ProgressAt(elapsed, total int) Progress {
	if total < 1 {
		total = 1
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	return Progress{
		ElapsedSeconds:   elapsed,
		TotalSeconds:     total,
		RemainingSeconds: total - elapsed,
		Fraction:         float64(elapsed) / float64(total),
	}
}

// Done reports whether the countdown reached zero.
func (p Progress) Done() bool {
	return p.RemainingSeconds == 0
}

// Percent is floor(fraction * 100), computed in integers so 1/3 never
// rounds up through float error.
func (p Progress) Percent() int {
	if p.TotalSeconds <= 0 {
		return 100
	}
	return p.ElapsedSeconds * 100 / p.TotalSeconds
}

// Filled returns floor(width * fraction).
func (p Progress) Filled(width int) int {
	if width <= 0 || p.TotalSeconds <= 0 {
		return 0
	}
	return width * p.ElapsedSeconds / p.TotalSeconds
}
