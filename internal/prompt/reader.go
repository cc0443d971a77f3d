package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reader asks line-oriented questions. Input is pumped by one goroutine so
// a pending question gives up when ctx is done; a question that cannot be
// answered falls back to its default ("N" for confirmations).
type Reader struct {
	ctx   context.Context
	src   *bufio.Reader
	out   io.Writer
	style Style

	once  sync.Once
	lines chan string
}

// Style is how prompts are decorated. The zero value prints plain "║"
// prefixed lines.
type Style struct {
	Border string
	Error  lipgloss.Style
}

func NewReader(ctx context.Context, in io.Reader, out io.Writer, style Style) *Reader {
	if style.Border == "" {
		style.Border = "║"
	}
	return &Reader{
		ctx:   ctx,
		src:   bufio.NewReader(in),
		out:   out,
		style: style,
	}
}

// Int asks for a positive integer until one is given. Blank input and end
// of input both return def.
func (r *Reader) Int(label string, def int) int {
	for {
		fmt.Fprintf(r.out, "%s %s (default %d): ", r.style.Border, label, def)
		line, ok := r.next()
		if !ok {
			fmt.Fprintln(r.out)
			return def
		}
		v, err := ParsePositive(line, def)
		if err == nil {
			return v
		}
		fmt.Fprintf(r.out, "%s %s\n", r.style.Border, r.style.Error.Render("Error: "+Describe(err)))
	}
}

// Confirm asks a Y/N question; anything but a leading y is a no.
func (r *Reader) Confirm(question string) bool {
	fmt.Fprintf(r.out, "%s %s (Y/N): ", r.style.Border, question)
	line, ok := r.next()
	if !ok {
		fmt.Fprintln(r.out)
		return false
	}
	return ParseYesNo(line)
}

func (r *Reader) next() (string, bool) {
	if r.ctx.Err() != nil {
		return "", false
	}
	r.once.Do(func() {
		r.lines = make(chan string)
		go r.pump()
	})
	select {
	case <-r.ctx.Done():
		return "", false
	case line, ok := <-r.lines:
		return line, ok
	}
}

func (r *Reader) pump() {
	defer close(r.lines)
	for {
		line, err := r.src.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil && line == "" {
			return
		}
		select {
		case r.lines <- line:
		case <-r.ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}
