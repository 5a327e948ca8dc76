// Package observability provides the editor's logger and human-readable
// document summaries for the CLI.
package observability

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing to stderr at the given level, which is
// any logrus level name; blank or unknown levels mean info. format is "json"
// or "text"; anything else falls back to text.
func NewLogger(level, format string) *logrus.Logger {
	return newLogger(os.Stderr, level, format)
}

func newLogger(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level = strings.TrimSpace(level)
	if level == "" {
		l.SetLevel(logrus.InfoLevel)
		return l
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("log_level", level).Warn("unknown log level, using info")
		return l
	}
	l.SetLevel(parsed)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
