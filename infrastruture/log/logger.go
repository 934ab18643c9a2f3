// Package logger provides the colored, prefixed application logger used by
// every component.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var levelColors = map[logrus.Level]string{
	logrus.DebugLevel: "\033[37m",
	logrus.InfoLevel:  "\033[32m",
	logrus.WarnLevel:  "\033[33m",
	logrus.ErrorLevel: "\033[31m",
}

// Logger writes lines shaped like "[PREFIX] [LEVEL] message key=value".
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger whose prefix is printed in the given ANSI color.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if out == nil {
		return nil, errors.New("logger output is required")
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// SetLevel changes the minimum level written. Accepts logrus level names.
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// With returns a logger that appends the given fields to every line.
func (l *Logger) With(fields map[string]any) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

// Info logs at info level.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warning logs at warning level.
func (l *Logger) Warning(msg string) { l.entry.Warn(msg) }

// Error logs at error level.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	level := strings.ToUpper(e.Level.String())

	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.prefix, colorReset,
		levelColors[e.Level], level, colorReset,
		e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
