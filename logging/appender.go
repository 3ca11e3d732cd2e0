package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr matches the console encoder's ISO8601 time layout so
// ad-hoc formatting (the test appender, this one) renders identically to
// the structured zap-backed output.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is anything that can receive a rendered log entry. zapcore.Core
// (and therefore zaptest's observer core) already satisfies it, which is
// what lets impl.AsZap tee a SugaredLogger's output into the same
// appenders a plain Logger writes to.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

type stdoutAppender struct{}

// NewStdoutAppender returns an Appender that writes console-formatted log
// lines to stdout.
func NewStdoutAppender() Appender {
	return &stdoutAppender{}
}

func (stdoutAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	parts := []string{
		entry.Time.Format(DefaultTimeFormatStr),
		strings.ToUpper(entry.Level.String()),
	}
	if entry.LoggerName != "" {
		parts = append(parts, entry.LoggerName)
	}
	if entry.Caller.Defined {
		parts = append(parts, callerToString(&entry.Caller))
	}
	parts = append(parts, entry.Message)

	line := strings.Join(parts, "\t")
	if len(fields) > 0 {
		enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
		buf, err := enc.EncodeEntry(zapcore.Entry{}, fields)
		if err != nil {
			fmt.Fprintln(os.Stdout, line)
			return err
		}
		line = line + "\t" + buf.String()
	}
	fmt.Fprintln(os.Stdout, line)
	return nil
}

func (stdoutAppender) Sync() error {
	return nil
}

// callerToString matches the short "file:line" format the rest of the
// package's log lines use.
func callerToString(c *zapcore.EntryCaller) string {
	return c.TrimmedPath()
}
