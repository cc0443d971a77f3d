package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sadopc/pomo/internal/pomodoro"
)

// RunJournal records the stages of one run. It satisfies
// pomodoro.Journal.
type RunJournal struct {
	store *Store
	id    int64
}

func (s *Store) BeginRun(ctx context.Context, cfg pomodoro.Config, mode pomodoro.CancelMode) (*RunJournal, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (work_minutes, short_break_minutes, long_break_minutes, sessions, confirm_each_stage, cancel_mode, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, 'running', ?)`,
		cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes, cfg.Sessions, boolToInt(cfg.ConfirmEachStage), mode.String(), now,
	)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return &RunJournal{store: s, id: id}, nil
}

func (j *RunJournal) ID() int64 {
	return j.id
}

func (j *RunJournal) RecordStage(ctx context.Context, rec pomodoro.StageRecord) error {
	_, err := j.store.db.ExecContext(ctx,
		`INSERT INTO stages (run_id, position, label, kind, planned_seconds, elapsed_seconds, status, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.id, rec.Index, rec.Stage.Label, rec.Stage.Kind.String(), rec.Stage.TotalSeconds, rec.ElapsedSeconds,
		string(rec.Status), rec.StartedAt.UTC().Format(time.RFC3339), rec.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record stage %q: %w", rec.Stage.Label, err)
	}
	return nil
}

// Finish stores the outcome of the run.
func (j *RunJournal) Finish(ctx context.Context, outcome pomodoro.Outcome) error {
	status := "completed"
	switch outcome.Status {
	case pomodoro.OutcomeCanceled:
		status = "canceled"
	case pomodoro.OutcomeInterrupted:
		status = "interrupted"
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := j.store.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, stopped_at_label = ?, finished_at = ? WHERE id = ?`,
		status, outcome.Stage, now, j.id,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", j.id, err)
	}
	return nil
}

func (j *RunJournal) Summary(ctx context.Context) ([]KindSummary, error) {
	return j.store.Summary(ctx, j.id)
}

// Snapshot loads the run row and all of its stages.
func (j *RunJournal) Snapshot(ctx context.Context) (*Run, []StageEntry, error) {
	run, err := j.store.GetRun(ctx, j.id)
	if err != nil {
		return nil, nil, err
	}
	entries, err := j.store.ListStages(ctx, j.id)
	if err != nil {
		return nil, nil, err
	}
	return run, entries, nil
}

func (s *Store) GetRun(ctx context.Context, id int64) (*Run, error) {
	r := &Run{}
	var confirm int
	var startedAt string
	var finishedAt sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, work_minutes, short_break_minutes, long_break_minutes, sessions, confirm_each_stage,
		        cancel_mode, status, stopped_at_label, started_at, finished_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.WorkMinutes, &r.ShortBreakMinutes, &r.LongBreakMinutes, &r.Sessions, &confirm,
		&r.CancelMode, &r.Status, &r.StoppedAt, &startedAt, &finishedAt)
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	r.ConfirmEachStage = confirm != 0
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if finishedAt.Valid {
		t, _ := time.Parse(time.RFC3339, finishedAt.String)
		r.FinishedAt = &t
	}
	return r, nil
}

// ListStages returns the recorded stages of a run in plan order.
func (s *Store) ListStages(ctx context.Context, runID int64) ([]StageEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, position, label, kind, planned_seconds, elapsed_seconds, status, started_at, finished_at
		 FROM stages WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var entries []StageEntry
	for rows.Next() {
		var e StageEntry
		var startedAt, finishedAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Position, &e.Label, &e.Kind, &e.PlannedSeconds,
			&e.ElapsedSeconds, &e.Status, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		e.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		e.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary groups a run's stages by kind, in the order kinds first appear.
func (s *Store) Summary(ctx context.Context, runID int64) ([]KindSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind,
		       SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status = 'skipped' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status IN ('canceled', 'interrupted') THEN 1 ELSE 0 END),
		       COALESCE(SUM(elapsed_seconds), 0)
		FROM stages
		WHERE run_id = ?
		GROUP BY kind
		ORDER BY MIN(position)`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []KindSummary
	for rows.Next() {
		var k KindSummary
		if err := rows.Scan(&k.Kind, &k.Completed, &k.Skipped, &k.Stopped, &k.ElapsedSeconds); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
