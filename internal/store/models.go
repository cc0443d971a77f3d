package store

import "time"

type Run struct {
	ID                int64
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	Sessions          int
	ConfirmEachStage  bool
	CancelMode        string
	Status            string // running, completed, canceled, interrupted
	StoppedAt         string // label of the stage the run stopped at
	StartedAt         time.Time
	FinishedAt        *time.Time
}

type StageEntry struct {
	ID             int64
	RunID          int64
	Position       int
	Label          string
	Kind           string // work, short_break, long_break
	PlannedSeconds int
	ElapsedSeconds int
	Status         string // completed, skipped, canceled, interrupted
	StartedAt      time.Time
	FinishedAt     time.Time
}

// KindSummary aggregates the stages of one kind within a run.
type KindSummary struct {
	Kind           string
	Completed      int
	Skipped        int
	Stopped        int // canceled or interrupted
	ElapsedSeconds int64
}
