// Package log provides context-aware logging for githooks.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Logger provides output, warnings and verbose command logging.
// Diagnostics go to stderr so hook output on stdout stays untouched.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	lr      *logrus.Logger
}

// New creates a new logger. Quiet wins over verbose.
func New(out io.Writer, verbose, quiet bool) *Logger {
	lr := logrus.New()
	lr.SetFormatter(lineFormatter{})
	lr.SetOutput(out)
	lr.SetLevel(logrus.WarnLevel)
	if verbose {
		lr.SetLevel(logrus.DebugLevel)
	}
	if quiet {
		lr.SetOutput(io.Discard)
	}
	return &Logger{out: out, verbose: verbose, quiet: quiet, lr: lr}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug logs a message with key/value pairs. Only printed in verbose mode.
// An odd trailing key is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	l.lr.WithFields(fields(keyvals)).Debug(msg)
}

// Warn logs a message with key/value pairs unless quiet.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l.quiet {
		return
	}
	l.lr.WithFields(fields(keyvals)).Warn(msg)
}

// Command logs an external command execution and returns a callback that
// records its duration. Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if debug output is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

func fields(keyvals []any) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		f[fmt.Sprint(keyvals[i])] = keyvals[i+1]
	}
	return f
}

// lineFormatter renders "level: msg k=v k=v" with keys sorted.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	switch e.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		b.WriteString("debug: ")
	case logrus.WarnLevel:
		b.WriteString("warning: ")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString("error: ")
	}
	b.WriteString(e.Message)

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
