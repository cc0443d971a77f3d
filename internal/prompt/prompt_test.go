package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func newTestReader(t *testing.T, input string) (*Reader, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewReader(context.Background(), strings.NewReader(input), &out, Style{}), &out
}

// ============================================================
// Parsing
// ============================================================

func TestParsePositive(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"", 25, nil},
		{"   ", 25, nil},
		{"7", 7, nil},
		{" 12 ", 12, nil},
		{"-5", 0, ErrNotNumber},
		{"+7", 0, ErrNotNumber},
		{"0", 0, ErrNotPositive},
		{"000", 0, ErrNotPositive},
		{"abc", 0, ErrNotNumber},
		{"4.5", 0, ErrNotNumber},
		{"12abc", 0, ErrNotNumber},
		{"100001", 0, ErrOutOfRange},
		{"99999999999999999999999", 0, ErrOutOfRange},
	}
	for _, tt := range tests {
		got, err := ParsePositive(tt.in, 25)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParsePositive(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePositive(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseYesNo(t *testing.T) {
	for _, in := range []string{"", "n", "no", "N", "nope", " ", "x"} {
		if ParseYesNo(in) {
			t.Errorf("ParseYesNo(%q) should be false", in)
		}
	}
	for _, in := range []string{"y", "Y", "yes", "YES", " yeah"} {
		if !ParseYesNo(in) {
			t.Errorf("ParseYesNo(%q) should be true", in)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(ErrNotNumber); got != "Contains non-digit characters" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Describe(ErrNotPositive); got != "Value must be positive" {
		t.Fatalf("unexpected %q", got)
	}
}

// ============================================================
// Reader
// ============================================================

func TestReaderIntDefault(t *testing.T) {
	r, out := newTestReader(t, "\n")
	if got := r.Int("Work duration (minutes)", 25); got != 25 {
		t.Fatalf("expected default 25, got %d", got)
	}
	if !strings.Contains(out.String(), "Work duration (minutes) (default 25): ") {
		t.Fatalf("prompt missing: %q", out.String())
	}
}

func TestReaderIntRepromptsOnInvalid(t *testing.T) {
	r, out := newTestReader(t, "0\nabc\n7\n")
	if got := r.Int("Number of sessions", 4); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	text := out.String()
	if n := strings.Count(text, "Number of sessions (default 4): "); n != 3 {
		t.Fatalf("expected 3 prompts, got %d in %q", n, text)
	}
	if !strings.Contains(text, "Error: Value must be positive") {
		t.Fatalf("missing positive error: %q", text)
	}
	if !strings.Contains(text, "Error: Contains non-digit characters") {
		t.Fatalf("missing digit error: %q", text)
	}
}

func TestReaderIntEOFFallsBack(t *testing.T) {
	r, _ := newTestReader(t, "abc\n")
	if got := r.Int("Long break (minutes)", 15); got != 15 {
		t.Fatalf("expected default after EOF, got %d", got)
	}
}

func TestReaderLastLineWithoutNewline(t *testing.T) {
	r, _ := newTestReader(t, "9")
	if got := r.Int("Short break (minutes)", 5); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}

func TestReaderSequence(t *testing.T) {
	r, _ := newTestReader(t, "30\n\n20\n2\ny\nn\n")
	if got := r.Int("a", 25); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := r.Int("b", 5); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := r.Int("c", 15); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := r.Int("d", 4); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if !r.Confirm("e?") {
		t.Fatal("expected yes")
	}
	if r.Confirm("f?") {
		t.Fatal("expected no")
	}
	if r.Confirm("g?") {
		t.Fatal("EOF should be no")
	}
}

func TestReaderConfirmCRLF(t *testing.T) {
	r, out := newTestReader(t, "Yes\r\n")
	if !r.Confirm("Start timer with these settings?") {
		t.Fatal("expected yes")
	}
	if !strings.Contains(out.String(), "Start timer with these settings? (Y/N): ") {
		t.Fatalf("prompt missing: %q", out.String())
	}
}

func TestReaderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewReader(ctx, pr, &bytes.Buffer{}, Style{})
	if r.Confirm("Start Long Break?") {
		t.Fatal("canceled confirm should be no")
	}
	if got := r.Int("x", 3); got != 3 {
		t.Fatalf("canceled int should be default, got %d", got)
	}
}

func TestReaderUsesInjectedStyle(t *testing.T) {
	var out bytes.Buffer
	style := Style{
		Border: "|",
		Error:  lipgloss.NewStyle().Transform(strings.ToUpper),
	}
	r := NewReader(context.Background(), strings.NewReader("x\n3\n"), &out, style)
	if got := r.Int("Sessions", 4); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	text := out.String()
	if !strings.HasPrefix(text, "| Sessions (default 4): ") {
		t.Fatalf("border not applied: %q", text)
	}
	if !strings.Contains(text, "| ERROR: CONTAINS NON-DIGIT CHARACTERS") {
		t.Fatalf("error style not applied: %q", text)
	}
	if strings.Contains(text, "║") {
		t.Fatalf("default border leaked: %q", text)
	}
}
