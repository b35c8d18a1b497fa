package sentry

import (
	"io"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level is the severity of the logger a Writer sits behind.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) sentryLevel() gosentry.Level {
	switch l {
	case LevelError:
		return gosentry.LevelError
	case LevelWarning:
		return gosentry.LevelWarning
	default:
		return gosentry.LevelInfo
	}
}

// Writer tees log lines to inner and mirrors them into Sentry: errors become
// events, everything else becomes a breadcrumb on the next one.
type Writer struct {
	inner io.Writer
	level Level
}

func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)
	if !enabled {
		return n, err
	}

	msg := Redact(strings.TrimSpace(string(p)))
	if msg == "" {
		return n, err
	}

	if w.level == LevelError {
		gosentry.CaptureMessage(msg)
		return n, err
	}
	gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
		Level:    w.level.sentryLevel(),
		Category: "log",
		Message:  msg,
	})
	return n, err
}
