// Package alerts prints session notices such as exports and early
// termination.
package alerts

import (
	"fmt"
	"io"
	"time"
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

var levels = map[Level]struct {
	name, icon, color string
}{
	LevelError:   {"error", "✗", "\033[31m"},
	LevelWarning: {"warning", "!", "\033[33m"},
	LevelInfo:    {"info", "i", "\033[36m"},
	LevelSuccess: {"success", "✓", "\033[32m"},
}

const resetColor = "\033[0m"

// String returns the string representation of the alert level.
func (l Level) String() string {
	if v, ok := levels[l]; ok {
		return v.name
	}
	return fmt.Sprintf("unknown(%d)", l)
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	if v, ok := levels[l]; ok {
		return v.icon
	}
	return "?"
}

// Color returns the ANSI color code of the level.
func (l Level) Color() string {
	if v, ok := levels[l]; ok {
		return v.color
	}
	return resetColor
}

// Alert represents a status notification.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert { return New(LevelError, message) }

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert { return New(LevelWarning, message) }

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert { return New(LevelInfo, message) }

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert { return New(LevelSuccess, message) }

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
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that prints plain lines to w.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}
