package pomodoro

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Phase is the orchestrator's coarse state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
	PhaseCanceled
	PhaseInterrupted
)

var phaseNames = map[Phase]string{
	PhaseIdle:        "idle",
	PhaseRunning:     "running",
	PhaseCompleted:   "completed",
	PhaseCanceled:    "canceled",
	PhaseInterrupted: "interrupted",
}

func (p Phase) String() string { return phaseNames[p] }

// State is a snapshot of where the cycle is.
type State struct {
	Phase Phase
	Index int // position in the plan while running, -1 otherwise
	Kind  StageKind
}

// StageStatus is how a planned stage ended.
type StageStatus string

const (
	StatusCompleted   StageStatus = "completed"
	StatusSkipped     StageStatus = "skipped"
	StatusCanceled    StageStatus = "canceled"
	StatusInterrupted StageStatus = "interrupted"
)

// StageRecord is written to the journal once per stage that was reached.
type StageRecord struct {
	Index          int
	Stage          Stage
	Status         StageStatus
	ElapsedSeconds int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Journal keeps the stage history of the current run.
type Journal interface {
	RecordStage(ctx context.Context, rec StageRecord) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// StageRunner runs one countdown. *Timer implements it.
type StageRunner interface {
	Run(ctx context.Context, stage Stage) (int, error)
}

// Orchestrator walks the planned stages in order.
type Orchestrator struct {
	runner  StageRunner
	confirm Confirmer
	journal Journal
	clock   Clock
	mode    CancelMode
	log     logrus.FieldLogger

	state State
}

func NewOrchestrator(runner StageRunner, confirm Confirmer, log logrus.FieldLogger) *Orchestrator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Orchestrator{
		runner:  runner,
		confirm: confirm,
		clock:   SystemClock(),
		log:     log,
		state:   State{Phase: PhaseIdle, Index: -1},
	}
}

func (o *Orchestrator) WithJournal(j Journal) *Orchestrator {
	o.journal = j
	return o
}

func (o *Orchestrator) WithCancelMode(m CancelMode) *Orchestrator {
	o.mode = m
	return o
}

func (o *Orchestrator) WithClock(c Clock) *Orchestrator {
	if c != nil {
		o.clock = c
	}
	return o
}

func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the cycle described by cfg. The returned error is non-nil
// only for an invalid cfg; cancellation and interruption are outcomes.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}

	var outcome Outcome
	stages := Plan(cfg)
	o.log.WithFields(logrus.Fields{
		"stages":      len(stages),
		"cancel_mode": o.mode.String(),
		"confirm":     cfg.ConfirmEachStage,
	}).Debug("cycle started")

	for i, stage := range stages {
		o.state = State{Phase: PhaseRunning, Index: i, Kind: stage.Kind}

		if cfg.ConfirmEachStage && o.confirm != nil {
			if !o.confirm.Confirm(fmt.Sprintf("Start %s?", stage.Label)) {
				now := o.clock.Now()
				// A prompt that gave up on ctx is not an answer.
				if err := ctx.Err(); err != nil {
					o.record(ctx, StageRecord{Index: i, Stage: stage, Status: StatusInterrupted, StartedAt: now, FinishedAt: now})
					o.state = State{Phase: PhaseInterrupted, Index: -1}
					outcome.Status = OutcomeInterrupted
					outcome.Stage = stage.Label
					o.log.WithError(err).WithField("stage", stage.Label).Warn("cycle interrupted at confirmation")
					return outcome, nil
				}
				if o.mode == CancelSkip {
					o.record(ctx, StageRecord{Index: i, Stage: stage, Status: StatusSkipped, StartedAt: now, FinishedAt: now})
					outcome.Skipped = append(outcome.Skipped, stage.Label)
					o.log.WithField("stage", stage.Label).Info("stage skipped")
					continue
				}
				o.record(ctx, StageRecord{Index: i, Stage: stage, Status: StatusCanceled, StartedAt: now, FinishedAt: now})
				o.state = State{Phase: PhaseCanceled, Index: -1}
				outcome.Status = OutcomeCanceled
				outcome.Stage = stage.Label
				o.log.WithField("stage", stage.Label).Info("cycle canceled")
				return outcome, nil
			}
		}

		startedAt := o.clock.Now()
		elapsed, err := o.runner.Run(ctx, stage)
		if err != nil {
			o.record(ctx, StageRecord{Index: i, Stage: stage, Status: StatusInterrupted, ElapsedSeconds: elapsed, StartedAt: startedAt, FinishedAt: o.clock.Now()})
			o.state = State{Phase: PhaseInterrupted, Index: -1}
			outcome.Status = OutcomeInterrupted
			outcome.Stage = stage.Label
			o.log.WithError(err).WithField("stage", stage.Label).Warn("cycle interrupted")
			return outcome, nil
		}
		o.record(ctx, StageRecord{Index: i, Stage: stage, Status: StatusCompleted, ElapsedSeconds: elapsed, StartedAt: startedAt, FinishedAt: o.clock.Now()})
		outcome.Completed = append(outcome.Completed, stage.Label)
	}

	o.state = State{Phase: PhaseCompleted, Index: -1}
	outcome.Status = OutcomeCompleted
	o.log.WithField("completed", len(outcome.Completed)).Debug("cycle completed")
	return outcome, nil
}

func (o *Orchestrator) record(ctx context.Context, rec StageRecord) {
	if o.journal == nil {
		return
	}
	// The journal only feeds the end-of-run summary.
	if err := o.journal.RecordStage(context.WithoutCancel(ctx), rec); err != nil {
		o.log.WithError(err).WithField("stage", rec.Stage.Label).Warn("journal write failed")
	}
}
