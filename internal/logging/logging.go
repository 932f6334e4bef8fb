// Package logging configures the logrus logger used for diagnostics. Output
// goes to stderr as one line per entry, prefixed with a severity tag:
//
//	[WARN] no icon found in bundle, using the bundle itself
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level names accepted in config and on the command line.
const (
	DEBUG   = "debug"
	INFO    = "info"
	WARNING = "warn"
	ERROR   = "error"
)

// New returns a logger writing tagged lines to w at the given level.
// Unknown level names fall back to info.
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &TagFormatter{}
	log.Level = ParseLevel(level)
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return New(io.Discard, ERROR)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case DEBUG:
		return logrus.DebugLevel
	case WARNING, "warning":
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// TagFormatter renders "[LEVEL] message key=value ...".
type TagFormatter struct{}

// Format implements logrus.Formatter.
func (f *TagFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s", tag(entry.Level), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func tag(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "WARN"
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR"
	default:
		return strings.ToUpper(l.String())
	}
}
