// Package console decides how much the attached terminal can do.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/sadopc/pomo/internal/pomodoro"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Capability describes what the output stream supports.
type Capability int

const (
	// Unsupported means plain text only: no cursor movement, no color.
	Unsupported Capability = iota
	// Supported means ANSI escape sequences are interpreted.
	Supported
)

func (c Capability) String() string {
	if c == Supported {
		return "supported"
	}
	return "unsupported"
}

// InPlace reports whether frames can be redrawn with cursor movement.
func (c Capability) InPlace() bool {
	return c == Supported
}

// Negotiate inspects out once at startup. Only a terminal file whose TERM
// is not "dumb" and that accepts virtual terminal processing counts as
// Supported.
func Negotiate(out io.Writer, log logrus.FieldLogger) Capability {
	return negotiate(out, os.Getenv, log)
}

func negotiate(out io.Writer, getenv func(string) string, log logrus.FieldLogger) Capability {
	if log == nil {
		log = logrus.New()
	}
	f, ok := out.(*os.File)
	if !ok {
		log.Debug("output is not a file, using plain rendering")
		return Unsupported
	}
	if !term.IsTerminal(int(f.Fd())) {
		log.Debug("output is not a terminal, using plain rendering")
		return Unsupported
	}
	if strings.EqualFold(getenv("TERM"), "dumb") {
		log.Debug("TERM=dumb, using plain rendering")
		return Unsupported
	}
	if err := prepare(platformSetup(f), log); err != nil {
		log.WithError(err).Warn("could not enable ANSI processing")
		return Unsupported
	}
	return Supported
}

// setup is the console preparation a platform needs. Nil steps are
// skipped.
type setup struct {
	enableVT func() error
	useUTF8  func() error
}

// prepare fails only when escape sequences cannot be enabled. Without
// UTF-8 the glyphs may be garbled but the timer still works.
func prepare(s setup, log logrus.FieldLogger) error {
	if s.enableVT != nil {
		if err := s.enableVT(); err != nil {
			return err
		}
	}
	if s.useUTF8 != nil {
		if err := s.useUTF8(); err != nil && log != nil {
			log.WithError(err).Warn("could not switch console to UTF-8")
		}
	}
	return nil
}

// Bell rings the terminal bell when a stage finishes. Write errors are
// logged and dropped.
type Bell struct {
	out io.Writer
	log logrus.FieldLogger
}

var _ pomodoro.Cue = (*Bell)(nil)

func NewBell(out io.Writer, log logrus.FieldLogger) *Bell {
	if log == nil {
		log = logrus.New()
	}
	return &Bell{out: out, log: log}
}

func (b *Bell) Signal(kind pomodoro.StageKind) {
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		b.log.WithError(err).WithField("kind", kind.String()).Debug("bell failed")
	}
}
