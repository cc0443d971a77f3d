package pomodoro

import "fmt"

// OutcomeStatus is the terminal result of a run.
type OutcomeStatus int

const (
	OutcomeCompleted OutcomeStatus = iota
	OutcomeCanceled
	OutcomeInterrupted
)

// Outcome is produced once, when the orchestrator stops.
type Outcome struct {
	Status OutcomeStatus
	// Stage is the label the cycle stopped at; empty when completed.
	Stage     string
	Completed []string
	Skipped   []string
}

// CanceledAt is the outcome of declining the confirmation for label.
func CanceledAt(label string) Outcome {
	return Outcome{Status: OutcomeCanceled, Stage: label}
}

func (o Outcome) String() string {
	switch o.Status {
	case OutcomeCanceled:
		return fmt.Sprintf("Canceled at %s", o.Stage)
	case OutcomeInterrupted:
		return fmt.Sprintf("Interrupted during %s", o.Stage)
	}
	if len(o.Skipped) > 0 {
		return fmt.Sprintf("Completed (%d skipped)", len(o.Skipped))
	}
	return "Completed"
}
