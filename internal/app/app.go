// Package app runs one Pomodoro session from setup to summary.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sadopc/pomo/internal/config"
	"github.com/sadopc/pomo/internal/console"
	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/pomodoro"
	"github.com/sadopc/pomo/internal/prompt"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/tui"
	"github.com/sirupsen/logrus"
)

const summaryWidth = 60

type Options struct {
	In         io.Reader
	Out        io.Writer
	Config     *config.AppConfig
	Capability console.Capability
	Clock      pomodoro.Clock
	Log        logrus.FieldLogger
}

type session struct {
	opts   Options
	cfg    *config.AppConfig
	log    logrus.FieldLogger
	theme  tui.Theme
	reader *prompt.Reader
}

// Run drives setup, the cycle and the wrap-up. It returns the process exit
// code, which is 0 for every user-driven ending including cancellation.
func Run(ctx context.Context, opts Options) int {
	s := newSession(ctx, opts)

	s.banner("Pomodoro Timer Setup")
	setup, err := s.setup(ctx)
	if err != nil {
		s.log.WithError(err).Error("setup failed")
		return 1
	}
	if !setup.Start {
		s.banner("Timer Canceled")
		return 0
	}

	journal, closeJournal := s.openJournal(ctx, setup.Config)
	defer closeJournal()

	s.banner("Pomodoro Started")
	outcome, err := s.cycle(ctx, setup.Config, journal)
	if err != nil {
		s.log.WithError(err).Error("cycle failed")
		return 1
	}
	s.report(outcome)

	if journal != nil {
		s.wrapUp(ctx, journal, outcome)
	}
	return 0
}

func newSession(ctx context.Context, opts Options) *session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	r := lipgloss.NewRenderer(opts.Out)
	if !opts.Capability.InPlace() {
		r.SetColorProfile(termenv.Ascii)
	}

	theme := tui.NewTheme(r, cfg.BarWidth)
	return &session{
		opts:  opts,
		cfg:   cfg,
		log:   log,
		theme: theme,
		reader: prompt.NewReader(ctx, opts.In, opts.Out, prompt.Style{
			Border: theme.Border,
			Error:  theme.Error,
		}),
	}
}

func (s *session) banner(text string) {
	fmt.Fprintln(s.opts.Out, s.theme.Header(text))
}

func (s *session) line(text string) {
	fmt.Fprintf(s.opts.Out, "%s %s\n", s.theme.Border, text)
}

func (s *session) setup(ctx context.Context) (tui.SetupResult, error) {
	defaults := pomodoro.DefaultConfig()

	if s.cfg.UI == config.UIForm {
		if s.opts.Capability.InPlace() {
			res, err := tui.RunSetupForm(ctx, s.opts.In, s.opts.Out, s.theme, defaults)
			if err == nil {
				if res.Start {
					s.echo(res.Config)
				}
				return res, nil
			}
			s.log.WithError(err).Warn("setup form unavailable, falling back to prompts")
		} else {
			s.log.Debug("terminal cannot host the setup form, using prompts")
		}
	}

	cfg := pomodoro.Config{
		WorkMinutes:       s.reader.Int("Work duration (minutes)", defaults.WorkMinutes),
		ShortBreakMinutes: s.reader.Int("Short break (minutes)", defaults.ShortBreakMinutes),
		LongBreakMinutes:  s.reader.Int("Long break (minutes)", defaults.LongBreakMinutes),
		Sessions:          s.reader.Int("Number of sessions", defaults.Sessions),
	}
	cfg.ConfirmEachStage = s.reader.Confirm("Enable confirmation before each timer?")
	if err := cfg.Validate(); err != nil {
		return tui.SetupResult{}, fmt.Errorf("collect settings: %w", err)
	}

	s.echo(cfg)
	start := s.reader.Confirm("Start timer with these settings?")
	return tui.SetupResult{Config: cfg, Start: start}, nil
}

// echo repeats the chosen settings before the start question.
func (s *session) echo(cfg pomodoro.Config) {
	confirm := "no"
	if cfg.ConfirmEachStage {
		confirm = "yes"
	}
	s.line(s.theme.Muted.Render(fmt.Sprintf("Work %d min, short break %d min, long break %d min", cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes)))
	s.line(s.theme.Muted.Render(fmt.Sprintf("Sessions %d, confirm each timer: %s", cfg.Sessions, confirm)))
}

// openJournal starts the in-memory run log. Without it the run goes on,
// only the summary and export are lost. An interrupted run is still
// journaled, so opening ignores cancellation.
func (s *session) openJournal(ctx context.Context, cfg pomodoro.Config) (*store.RunJournal, func()) {
	if !s.cfg.Summary && s.cfg.ExportPath == "" {
		return nil, func() {}
	}
	db, err := store.NewMemory()
	if err != nil {
		s.log.WithError(err).Warn("run journal unavailable")
		return nil, func() {}
	}
	journal, err := db.BeginRun(context.WithoutCancel(ctx), cfg, s.cfg.CancelMode)
	if err != nil {
		s.log.WithError(err).Warn("run journal unavailable")
		db.Close()
		return nil, func() {}
	}
	return journal, func() { db.Close() }
}

func (s *session) cycle(ctx context.Context, cfg pomodoro.Config, journal *store.RunJournal) (pomodoro.Outcome, error) {
	clock := s.opts.Clock
	if clock == nil {
		clock = pomodoro.SystemClock()
	}

	var cue pomodoro.Cue = pomodoro.NopCue{}
	if s.cfg.Sound && s.opts.Capability == console.Supported {
		cue = console.NewBell(s.opts.Out, s.log)
	}

	display := tui.NewProgressView(s.opts.Out, s.theme, s.opts.Capability.InPlace())
	timer := pomodoro.NewTimer(clock, s.cfg.Tick, display, cue)

	o := pomodoro.NewOrchestrator(timer, s.reader, s.log).
		WithCancelMode(s.cfg.CancelMode).
		WithClock(clock)
	if journal != nil {
		o = o.WithJournal(journal)
	}
	return o.Run(ctx, cfg)
}

func (s *session) report(outcome pomodoro.Outcome) {
	switch outcome.Status {
	case pomodoro.OutcomeCompleted:
		s.banner("Pomodoro Completed")
		s.line(s.theme.Success.Render(outcome.String()))
	case pomodoro.OutcomeCanceled:
		s.banner("Pomodoro Canceled")
		s.line(s.theme.Error.Render(outcome.String()))
	case pomodoro.OutcomeInterrupted:
		s.banner("Timer Canceled")
		s.line(s.theme.Error.Render(outcome.String()))
	}
}

// wrapUp closes the journal and prints or writes what it collected.
// Failures here are logged only.
func (s *session) wrapUp(ctx context.Context, journal *store.RunJournal, outcome pomodoro.Outcome) {
	ctx = context.WithoutCancel(ctx)
	if err := journal.Finish(ctx, outcome); err != nil {
		s.log.WithError(err).Warn("could not close run journal")
		return
	}

	if s.cfg.Summary {
		rows, err := journal.Summary(ctx)
		if err != nil {
			s.log.WithError(err).Warn("could not summarize run")
		} else {
			fmt.Fprintln(s.opts.Out, s.theme.Summary(rows, summaryWidth))
		}
	}

	if s.cfg.ExportPath != "" {
		run, entries, err := journal.Snapshot(ctx)
		if err == nil {
			err = export.Write(s.cfg.ExportPath, run, entries)
		}
		if err != nil {
			s.log.WithError(err).WithField("path", s.cfg.ExportPath).Warn("export failed")
			return
		}
		s.line(s.theme.Muted.Render("Run log written to " + s.cfg.ExportPath))
	}
}
