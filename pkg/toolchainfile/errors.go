package toolchainfile

import (
	"errors"
	"strconv"
	"strings"
)

// ErrRegistryMissing reports that the toolchain registry file does not exist.
var ErrRegistryMissing = errors.New("toolchain registry file does not exist")

// LineError describes a malformed registry line.
type LineError struct {
	Line    int
	Text    string
	Message string
}

func (e *LineError) Error() string {
	msg := formatLine(e.Line) + ": " + e.Message
	if e.Text != "" {
		msg += " (" + strconv.Quote(e.Text) + ")"
	}
	return msg
}

// LineErrors aggregates the malformed lines skipped during a lenient scan.
type LineErrors []*LineError

func (errs LineErrors) Error() string {
	if len(errs) == 0 {
		return "malformed registry lines"
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// Unwrap exposes the individual line errors to errors.As.
func (errs LineErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = err
	}
	return out
}

func formatLine(line int) string {
	if line <= 0 {
		return "line"
	}
	return "line " + strconv.Itoa(line)
}
