package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sadopc/pomo/internal/pomodoro"
)

// FormatRemaining renders whole seconds as MM:SS. Minutes are not
// wrapped into hours.
func FormatRemaining(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Bar draws floor(width * fraction) filled cells followed by empty ones.
func (t Theme) Bar(p pomodoro.Progress) string {
	filled := p.Filled(t.BarWidth)
	return strings.Repeat(t.Fill, filled) + strings.Repeat(t.Empty, t.BarWidth-filled)
}

func (t Theme) stageStyle(kind pomodoro.StageKind) func(...string) string {
	if kind.IsBreak() {
		return t.Break.Render
	}
	return t.Work.Render
}

// FrameLines is the three-line status block for one tick. It has no side
// effects.
func (t Theme) FrameLines(stage pomodoro.Stage, p pomodoro.Progress) []string {
	render := t.stageStyle(stage.Kind)
	return []string{
		render(fmt.Sprintf("%s %s", t.Border, stage.Label)),
		render(fmt.Sprintf("%s [%s] %d%%", t.Border, t.Bar(p), p.Percent())),
		render(fmt.Sprintf("%s Remaining: %s", t.Border, FormatRemaining(p.RemainingSeconds))),
	}
}

// FrameLine is the single-line form used when the cursor cannot move.
func (t Theme) FrameLine(stage pomodoro.Stage, p pomodoro.Progress) string {
	render := t.stageStyle(stage.Kind)
	return render(fmt.Sprintf("%s [%s] %3d%% %s", stage.Label, t.Bar(p), p.Percent(), FormatRemaining(p.RemainingSeconds)))
}

// Header draws the boxed banner printed between phases.
func (t Theme) Header(text string) string {
	return t.Box.Render(ansi.Truncate(text, t.BoxWidth-2, "…"))
}

// ProgressView writes countdown frames to a terminal. With inPlace set it
// redraws a three-line block using cursor movement, otherwise it rewrites
// one line with a carriage return.
type ProgressView struct {
	out     io.Writer
	theme   Theme
	inPlace bool

	last  string
	drawn bool
	width int // display width of the last single-line frame
}

func NewProgressView(out io.Writer, theme Theme, inPlace bool) *ProgressView {
	return &ProgressView{out: out, theme: theme, inPlace: inPlace}
}

func (v *ProgressView) Begin(stage pomodoro.Stage) {
	fmt.Fprintln(v.out, v.theme.Header(stage.Label))
	v.last = ""
	v.drawn = false
	v.width = 0
}

func (v *ProgressView) Frame(stage pomodoro.Stage, p pomodoro.Progress) {
	if !v.inPlace {
		line := v.theme.FrameLine(stage, p)
		if v.drawn && line == v.last {
			return
		}
		// Plain output cannot erase, so overwrite leftovers with blanks.
		w := ansi.StringWidth(line)
		pad := ""
		if v.width > w {
			pad = strings.Repeat(" ", v.width-w)
		}
		fmt.Fprint(v.out, "\r"+line+pad)
		v.last = line
		v.drawn = true
		v.width = w
		return
	}

	lines := v.theme.FrameLines(stage, p)
	block := strings.Join(lines, "\n")
	if v.drawn && block == v.last {
		return
	}
	var b strings.Builder
	if v.drawn {
		b.WriteString("\r" + ansi.CursorUp(len(lines)-1))
	}
	for i, line := range lines {
		b.WriteString(line + ansi.EraseLineRight)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	io.WriteString(v.out, b.String())
	v.last = block
	v.drawn = true
}

func (v *ProgressView) Finish(stage pomodoro.Stage, p pomodoro.Progress) {
	v.Frame(stage, p)
	if p.Done() {
		fmt.Fprintf(v.out, "\n%s\n", v.theme.Success.Render(fmt.Sprintf("%s ✔ %s complete", v.theme.Border, stage.Label)))
	} else {
		fmt.Fprintf(v.out, "\n%s\n", v.theme.Muted.Render(fmt.Sprintf("%s ✖ %s stopped with %s left", v.theme.Border, stage.Label, FormatRemaining(p.RemainingSeconds))))
	}
	v.drawn = false
	v.last = ""
	v.width = 0
}
