package pomodoro

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a cycle cannot be planned.
var ErrInvalidConfig = errors.New("invalid cycle config")

// Config holds the user's settings for one run.
type Config struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	Sessions          int
	ConfirmEachStage  bool
}

// DefaultConfig mirrors the defaults offered at the setup prompts.
func DefaultConfig() Config {
	return Config{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		Sessions:          4,
	}
}

func (c Config) Validate() error {
	switch {
	case c.WorkMinutes <= 0:
		return fmt.Errorf("%w: work minutes must be positive, got %d", ErrInvalidConfig, c.WorkMinutes)
	case c.ShortBreakMinutes <= 0:
		return fmt.Errorf("%w: short break minutes must be positive, got %d", ErrInvalidConfig, c.ShortBreakMinutes)
	case c.LongBreakMinutes <= 0:
		return fmt.Errorf("%w: long break minutes must be positive, got %d", ErrInvalidConfig, c.LongBreakMinutes)
	case c.Sessions < 1:
		return fmt.Errorf("%w: sessions must be at least 1, got %d", ErrInvalidConfig, c.Sessions)
	}
	return nil
}

// CancelMode decides what a declined confirmation does.
type CancelMode int

const (
	// CancelAbort ends the whole cycle at the declined stage.
	CancelAbort CancelMode = iota
	// CancelSkip drops only the declined stage and carries on.
	CancelSkip
)

func (m CancelMode) String() string {
	if m == CancelSkip {
		return "skip"
	}
	return "abort"
}

// ParseCancelMode accepts "abort" or "skip", case-insensitively.
func ParseCancelMode(s string) (CancelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return CancelAbort, nil
	case "skip":
		return CancelSkip, nil
	}
	return CancelAbort, fmt.Errorf("unknown cancel mode %q", s)
}

// Plan lays out the ordered stages for cfg: a work session per count,
// a short break between consecutive sessions, then one long break.
func Plan(cfg Config) []Stage {
	if cfg.Sessions < 1 {
		return nil
	}
	stages := make([]Stage, 0, 2*cfg.Sessions)
	for i := 1; i <= cfg.Sessions; i++ {
		stages = append(stages, NewStage(KindWork, fmt.Sprintf("Work Session #%d", i), cfg.WorkMinutes))
		if i < cfg.Sessions {
			stages = append(stages, NewStage(KindShortBreak, fmt.Sprintf("Short Break #%d", i), cfg.ShortBreakMinutes))
		}
	}
	return append(stages, NewStage(KindLongBreak, "Long Break", cfg.LongBreakMinutes))
}
