package prompt

import (
	"errors"
	"strconv"
	"strings"
)

// MaxValue bounds numeric answers so minutes converted to seconds stay
// well inside int.
const MaxValue = 100000

var (
	ErrNotNumber   = errors.New("contains non-digit characters")
	ErrNotPositive = errors.New("value must be positive")
	ErrOutOfRange  = errors.New("value is too large")
)

// ParsePositive validates one numeric answer. Blank input yields def.
// Only plain digits are accepted, so signs count as non-digits.
func ParsePositive(input string, def int) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return def, nil
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrNotNumber
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrOutOfRange
	}
	if v <= 0 {
		return 0, ErrNotPositive
	}
	if v > MaxValue {
		return 0, ErrOutOfRange
	}
	return v, nil
}

// ParseYesNo is true only when the first non-blank character is y or Y.
func ParseYesNo(input string) bool {
	s := strings.TrimSpace(input)
	return s != "" && (s[0] == 'y' || s[0] == 'Y')
}

// Describe turns a validation error into the sentence shown to the user.
func Describe(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
