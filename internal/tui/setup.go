package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/pomodoro"
	"github.com/sadopc/pomo/internal/prompt"
)

// SetupResult is what the setup form collected.
type SetupResult struct {
	Config pomodoro.Config
	Start  bool
}

type setupModel struct {
	theme    Theme
	defaults pomodoro.Config
	form     *huh.Form
	help     help.Model

	// Form values as pointers (survive value copies)
	work       *string
	shortBreak *string
	longBreak  *string
	sessions   *string
	confirm    *bool
	start      *bool

	done    bool
	aborted bool
}

func positiveField(def int) func(string) error {
	return func(s string) error {
		if _, err := prompt.ParsePositive(s, def); err != nil {
			return errors.New(prompt.Describe(err))
		}
		return nil
	}
}

func newSetupModel(theme Theme, defaults pomodoro.Config) setupModel {
	w, sb, lb, n := "", "", "", ""
	confirm, start := defaults.ConfirmEachStage, false
	m := setupModel{
		theme:      theme,
		defaults:   defaults,
		help:       help.New(),
		work:       &w,
		shortBreak: &sb,
		longBreak:  &lb,
		sessions:   &n,
		confirm:    &confirm,
		start:      &start,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work duration (minutes)").
				Placeholder(strconv.Itoa(defaults.WorkMinutes)).
				Validate(positiveField(defaults.WorkMinutes)).
				Value(m.work),
			huh.NewInput().
				Title("Short break (minutes)").
				Placeholder(strconv.Itoa(defaults.ShortBreakMinutes)).
				Validate(positiveField(defaults.ShortBreakMinutes)).
				Value(m.shortBreak),
			huh.NewInput().
				Title("Long break (minutes)").
				Placeholder(strconv.Itoa(defaults.LongBreakMinutes)).
				Validate(positiveField(defaults.LongBreakMinutes)).
				Value(m.longBreak),
			huh.NewInput().
				Title("Number of sessions").
				Placeholder(strconv.Itoa(defaults.Sessions)).
				Validate(positiveField(defaults.Sessions)).
				Value(m.sessions),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable confirmation before each timer?").
				Affirmative("Yes").
				Negative("No").
				Value(m.confirm),
			huh.NewConfirm().
				Title("Start timer with these settings?").
				Affirmative("Start").
				Negative("Cancel").
				Value(m.start),
		).Title("Run"),
	).WithShowHelp(false).WithShowErrors(true)

	return m
}

func (m setupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.done = true
		return m, tea.Quit
	case huh.StateAborted:
		m.aborted = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m setupModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	title := m.theme.Title.Render("Pomodoro Timer Setup")
	return m.theme.Panel.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), "", m.theme.Muted.Render(m.help.View(keys))),
	)
}

// result converts the form answers. Fields were validated by the form,
// so errors here mean the form was bypassed.
func (m setupModel) result() (SetupResult, error) {
	if m.aborted || !m.done {
		return SetupResult{}, nil
	}
	var (
		cfg pomodoro.Config
		err error
	)
	fields := []struct {
		name string
		in   string
		def  int
		dst  *int
	}{
		{"work", *m.work, m.defaults.WorkMinutes, &cfg.WorkMinutes},
		{"short break", *m.shortBreak, m.defaults.ShortBreakMinutes, &cfg.ShortBreakMinutes},
		{"long break", *m.longBreak, m.defaults.LongBreakMinutes, &cfg.LongBreakMinutes},
		{"sessions", *m.sessions, m.defaults.Sessions, &cfg.Sessions},
	}
	for _, f := range fields {
		if *f.dst, err = prompt.ParsePositive(f.in, f.def); err != nil {
			return SetupResult{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	cfg.ConfirmEachStage = *m.confirm
	return SetupResult{Config: cfg, Start: *m.start}, nil
}

// RunSetupForm shows the interactive setup form. Canceling the form is
// reported as Start == false, not as an error.
func RunSetupForm(ctx context.Context, in io.Reader, out io.Writer, theme Theme, defaults pomodoro.Config) (SetupResult, error) {
	m := newSetupModel(theme, defaults)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return SetupResult{}, nil
		}
		return SetupResult{}, fmt.Errorf("run setup form: %w", err)
	}
	sm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected setup model %T", final)
	}
	return sm.result()
}
