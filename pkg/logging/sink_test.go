package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSink_FindFirstEmptySink(t *testing.T) {
	sink := NewSink()

	entry, ok := sink.FindFirst(WithMessage("anything"))

	assert.False(t, ok, "empty sink yields an absent result, never an error")
	assert.Equal(t, Entry{}, entry)
}

func TestSink_AppendOrderEqualsEmissionOrder(t *testing.T) {
	logger, sink := NewCapture(t)

	logger.Info("first")
	logger.Warn("second")
	logger.Error("third")

	entries := sink.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Message())
	assert.Equal(t, "second", entries[1].Message())
	assert.Equal(t, "third", entries[2].Message())
}

func TestSink_FindFirstReturnsEarliestMatch(t *testing.T) {
	logger, sink := NewCapture(t)

	logger.Info("request", Fields{"attempt": 1})
	logger.Info("request", Fields{"attempt": 2})

	entry, ok := sink.FindFirst(WithMessage("request"))
	require.True(t, ok)

	v, _ := entry.Field("attempt")
	assert.Equal(t, 1, v)
}

func TestSink_FindCombinesCriteria(t *testing.T) {
	logger, sink := NewCapture(t)

	logger.Info("fetch", Fields{"status": 200})
	logger.Error("fetch", Fields{"status": 500})
	logger.Error("store", Fields{"status": 500})

	matches := sink.Find(WithLevel(zapcore.ErrorLevel), WithField("status", 500))
	require.Len(t, matches, 2)
	assert.Equal(t, "fetch", matches[0].Message())
	assert.Equal(t, "store", matches[1].Message())
}

func TestSink_FieldMatchesPredicate(t *testing.T) {
	logger, sink := NewCapture(t)

	logger.Info("a", Fields{"path": "/api/users"})
	logger.Info("b", Fields{"path": "/health"})

	matches := sink.Find(FieldMatches("path", func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, "/api/")
	}))

	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Message())
}

func TestSink_PredicatePanicPropagates(t *testing.T) {
	logger, sink := NewCapture(t)
	logger.Info("entry")

	assert.Panics(t, func() {
		sink.FindFirst(func(Entry) bool { panic("caller bug") })
	}, "malformed predicates are caller logic and must propagate")
}

func TestSink_EntriesSnapshotIsolation(t *testing.T) {
	logger, sink := NewCapture(t)
	logger.Info("one")

	snapshot := sink.Entries()
	logger.Info("two")

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, sink.Len())
}

func TestSink_Reset(t *testing.T) {
	logger, sink := NewCapture(t)

	logger.Info("stale")
	sink.Reset()

	assert.Equal(t, 0, sink.Len())
	_, ok := sink.FindFirst(WithMessage("stale"))
	assert.False(t, ok)
}

func TestSink_MissingFieldNeverMatches(t *testing.T) {
	logger, sink := NewCapture(t)
	logger.Info("bare")

	_, ok := sink.FindFirst(WithField("absent", nil))
	assert.False(t, ok)

	_, ok = sink.FindFirst(FieldMatches("absent", func(any) bool { return true }))
	assert.False(t, ok)
}
