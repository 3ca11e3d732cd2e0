package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

// recordingAppender captures every entry/field pair written to it, for
// tests that care about log content rather than console formatting.
type recordingAppender struct {
	entries []zapcore.Entry
	fields  [][]zapcore.Field
}

func (r *recordingAppender) Write(e zapcore.Entry, f []zapcore.Field) error {
	r.entries = append(r.entries, e)
	r.fields = append(r.fields, f)
	return nil
}

func (r *recordingAppender) Sync() error { return nil }

func TestImplLevelFiltering(t *testing.T) {
	rec := &recordingAppender{}
	l := &impl{"test", NewAtomicLevelAt(INFO), true, []Appender{rec}}

	l.Debug("should be filtered")
	test.That(t, len(rec.entries), test.ShouldEqual, 0)

	l.Info("visible")
	test.That(t, len(rec.entries), test.ShouldEqual, 1)
	test.That(t, rec.entries[0].Message, test.ShouldEqual, "visible")
	test.That(t, rec.entries[0].Level, test.ShouldEqual, zapcore.InfoLevel)

	l.SetLevel(DEBUG)
	l.Debug("now visible")
	test.That(t, len(rec.entries), test.ShouldEqual, 2)
}

func TestImplInfowFields(t *testing.T) {
	rec := &recordingAppender{}
	l := &impl{"test", NewAtomicLevelAt(INFO), true, []Appender{rec}}

	l.Infow("structured", "key", "value")
	test.That(t, len(rec.fields), test.ShouldEqual, 1)
	test.That(t, len(rec.fields[0]), test.ShouldEqual, 1)
	test.That(t, rec.fields[0][0].Key, test.ShouldEqual, "key")
}

func TestImplInfofTemplate(t *testing.T) {
	rec := &recordingAppender{}
	l := &impl{"test", NewAtomicLevelAt(INFO), true, []Appender{rec}}

	l.Infof("value is %d", 7)
	test.That(t, rec.entries[0].Message, test.ShouldEqual, "value is 7")
}

func TestImplSublogger(t *testing.T) {
	parent := &impl{"parent", NewAtomicLevelAt(INFO), true, nil}
	sub := parent.Sublogger("child")
	test.That(t, sub.(*impl).name, test.ShouldEqual, "parent.child")
}
