// Package alerts provides a structured system for status notifications.
package alerts

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/reconciler"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed in front of the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelInfo:
		return "i"
	case LevelSuccess:
		return "✓"
	default:
		return "?"
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelInfo:
		return "\033[36m"
	case LevelSuccess:
		return "\033[32m"
	default:
		return ""
	}
}

// Alert represents a status notification for the user.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer prints alerts, one per line with indented details.
type Writer struct {
	w        io.Writer
	useColor bool
}

// NewWriter creates a Writer. Color is used when w is a terminal and
// noColor is false.
func NewWriter(w io.Writer, noColor bool) *Writer {
	return &Writer{w: w, useColor: !noColor && isTerminal(w)}
}

// Write prints the alerts in order.
func (aw *Writer) Write(alerts ...*Alert) error {
	for _, alert := range alerts {
		line := alert.String()
		if aw.useColor && alert.Level.color() != "" {
			line = alert.Level.color() + line + "\033[0m"
		}
		if _, err := fmt.Fprintln(aw.w, line); err != nil {
			return err
		}
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForImport derives the notices shown after an import: an LLM fallback and
// the rows a reviewer should check.
func ForImport(res *importer.Result) []*Alert {
	var out []*Alert
	if res.Status == importer.StatusFallback {
		out = append(out, NewWarning("LLM extraction failed, showing local parser result").
			WithDetails(res.LLMError))
	}
	if rows := reconciler.NeedsAttention(res.Rows); len(rows) > 0 {
		details := make([]string, 0, len(rows))
		for _, row := range rows {
			details = append(details, fmt.Sprintf("%s (%s, %s)", row.Label, row.Source, row.Confidence))
		}
		out = append(out, NewWarning(fmt.Sprintf("%d %s review", len(rows), plural(len(rows), "field needs", "fields need"))).
			WithDetails(details...))
	}
	if len(out) == 0 && res.Summary.Rows > 0 {
		out = append(out, NewSuccess(fmt.Sprintf("%d fields extracted", res.Summary.Rows)))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func isTerminal(w io.Writer) bool {
	type fd interface{ Fd() uintptr }
	f, ok := w.(fd)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
