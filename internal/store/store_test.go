package store

import (
	"context"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/pomodoro"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func beginTestRun(t *testing.T, s *Store) *RunJournal {
	t.Helper()
	run, err := s.BeginRun(context.Background(), pomodoro.DefaultConfig(), pomodoro.CancelAbort)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	return run
}

func record(t *testing.T, run *RunJournal, index int, stage pomodoro.Stage, status pomodoro.StageStatus, elapsed int) {
	t.Helper()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	err := run.RecordStage(context.Background(), pomodoro.StageRecord{
		Index:          index,
		Stage:          stage,
		Status:         status,
		ElapsedSeconds: elapsed,
		StartedAt:      now,
		FinishedAt:     now.Add(time.Duration(elapsed) * time.Second),
	})
	if err != nil {
		t.Fatalf("record stage: %v", err)
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	beginTestRun(t, a)

	var n int
	b.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	if n != 0 {
		t.Fatalf("expected empty second store, got %d runs", n)
	}
}

// ============================================================
// Runs
// ============================================================

func TestBeginRun(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	if run.ID() == 0 {
		t.Fatal("expected non-zero run ID")
	}

	r, err := s.GetRun(context.Background(), run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if r.WorkMinutes != 25 || r.ShortBreakMinutes != 5 || r.LongBreakMinutes != 15 || r.Sessions != 4 {
		t.Fatalf("unexpected run settings: %+v", r)
	}
	if r.Status != "running" || r.FinishedAt != nil {
		t.Fatalf("new run should be running: %+v", r)
	}
	if r.CancelMode != "abort" || r.ConfirmEachStage {
		t.Fatalf("unexpected run options: %+v", r)
	}
	if r.StartedAt.IsZero() {
		t.Fatal("StartedAt should be set")
	}
}

func TestFinishRunCanceled(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)

	if err := run.Finish(context.Background(), pomodoro.CanceledAt("Short Break #2")); err != nil {
		t.Fatal(err)
	}
	r, _ := s.GetRun(context.Background(), run.ID())
	if r.Status != "canceled" || r.StoppedAt != "Short Break #2" {
		t.Fatalf("unexpected run: %+v", r)
	}
	if r.FinishedAt == nil {
		t.Fatal("FinishedAt should be set")
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRun(context.Background(), 999); err == nil {
		t.Fatal("expected error for missing run")
	}
}

// ============================================================
// Stages
// ============================================================

func TestRecordAndListStages(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	stages := pomodoro.Plan(pomodoro.Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2, Sessions: 2})
	for i, st := range stages {
		record(t, run, i, st, pomodoro.StatusCompleted, st.TotalSeconds)
	}

	entries, err := s.ListStages(context.Background(), run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(stages) {
		t.Fatalf("expected %d entries, got %d", len(stages), len(entries))
	}
	for i, e := range entries {
		if e.Position != i || e.Label != stages[i].Label || e.Kind != stages[i].Kind.String() {
			t.Fatalf("entry %d mismatch: %+v", i, e)
		}
		if e.PlannedSeconds != stages[i].TotalSeconds || e.ElapsedSeconds != stages[i].TotalSeconds {
			t.Fatalf("entry %d seconds mismatch: %+v", i, e)
		}
	}
	if !entries[3].FinishedAt.Equal(entries[3].StartedAt.Add(2 * time.Minute)) {
		t.Fatalf("unexpected times: %v %v", entries[3].StartedAt, entries[3].FinishedAt)
	}
}

func TestRecordStageDuplicatePosition(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	st := pomodoro.NewStage(pomodoro.KindWork, "Work Session #1", 25)
	record(t, run, 0, st, pomodoro.StatusCompleted, 1500)

	err := run.RecordStage(context.Background(), pomodoro.StageRecord{Index: 0, Stage: st, Status: pomodoro.StatusCompleted})
	if err == nil {
		t.Fatal("expected error for duplicate position")
	}
}

func TestListStagesEmpty(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	entries, err := s.ListStages(context.Background(), run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Fatalf("expected nil slice, got %d items", len(entries))
	}
}

func TestForeignKeyStagesRun(t *testing.T) {
	s := newTestStore(t)
	orphan := &RunJournal{store: s, id: 42}
	err := orphan.RecordStage(context.Background(), pomodoro.StageRecord{
		Stage:  pomodoro.NewStage(pomodoro.KindWork, "Work Session #1", 25),
		Status: pomodoro.StatusCompleted,
	})
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}

// ============================================================
// Summary
// ============================================================

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	work := func(n int) pomodoro.Stage {
		return pomodoro.NewStage(pomodoro.KindWork, "Work Session #"+string(rune('0'+n)), 25)
	}
	short := func(n int) pomodoro.Stage {
		return pomodoro.NewStage(pomodoro.KindShortBreak, "Short Break #"+string(rune('0'+n)), 5)
	}

	record(t, run, 0, work(1), pomodoro.StatusCompleted, 1500)
	record(t, run, 1, short(1), pomodoro.StatusSkipped, 0)
	record(t, run, 2, work(2), pomodoro.StatusCompleted, 1500)
	record(t, run, 3, short(2), pomodoro.StatusInterrupted, 120)

	sum, err := s.Summary(context.Background(), run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 2 {
		t.Fatalf("expected 2 kinds, got %d: %+v", len(sum), sum)
	}
	if sum[0].Kind != "work" || sum[0].Completed != 2 || sum[0].ElapsedSeconds != 3000 {
		t.Fatalf("unexpected work summary: %+v", sum[0])
	}
	if sum[1].Kind != "short_break" || sum[1].Skipped != 1 || sum[1].Stopped != 1 || sum[1].ElapsedSeconds != 120 {
		t.Fatalf("unexpected break summary: %+v", sum[1])
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := newTestStore(t)
	run := beginTestRun(t, s)
	sum, err := s.Summary(context.Background(), run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 0 {
		t.Fatalf("expected no rows, got %+v", sum)
	}
}

func TestJournalWithOrchestrator(t *testing.T) {
	s := newTestStore(t)
	cfg := pomodoro.Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, Sessions: 2}
	run, err := s.BeginRun(context.Background(), cfg, pomodoro.CancelAbort)
	if err != nil {
		t.Fatal(err)
	}

	clock := pomodoro.NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	timer := pomodoro.NewTimer(clock, time.Second, nopDisplay{}, nil)
	o := pomodoro.NewOrchestrator(timer, nil, nil).WithJournal(run).WithClock(clock)
	outcome, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := run.Finish(context.Background(), outcome); err != nil {
		t.Fatal(err)
	}

	entries, _ := s.ListStages(context.Background(), run.ID())
	if len(entries) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(entries))
	}
	if !entries[1].StartedAt.Equal(clock.Now().Add(-3 * time.Minute)) {
		t.Fatalf("unexpected start of second stage: %v", entries[1].StartedAt)
	}
	r, snap, err := run.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != "completed" || len(snap) != 4 {
		t.Fatalf("unexpected snapshot: %+v, %d stages", r, len(snap))
	}
	sum, err := run.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 3 || sum[0].Kind != "work" || sum[0].ElapsedSeconds != 120 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

type nopDisplay struct{}

func (nopDisplay) Begin(pomodoro.Stage)                     {}
func (nopDisplay) Frame(pomodoro.Stage, pomodoro.Progress)  {}
func (nopDisplay) Finish(pomodoro.Stage, pomodoro.Progress) {}
