// pkg/logging/sink.go
package logging

import (
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"
)

// Sink is an append-only, in-memory store of emitted entries, used by
// tests to assert on observable behavior. Append order equals emission
// order within one logical scope; cross-goroutine ordering is
// best-effort only.
//
// A Sink is created fresh per test/run scope and cleared between
// independent scopes.
type Sink struct {
	mu      sync.Mutex
	id      string
	entries []Entry
}

// NewSink returns an empty sink with a unique scope ID.
func NewSink() *Sink {
	return &Sink{id: uuid.NewString()}
}

// ID returns the sink's scope identifier.
func (s *Sink) ID() string { return s.id }

// append stores an already-redacted entry.
func (s *Sink) append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Entries returns a read-only snapshot in emission order.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset clears all stored entries. Call between independent scopes.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Predicate reports whether an entry matches a query criterion.
// A panic inside a caller-supplied predicate propagates unchanged.
type Predicate func(Entry) bool

// WithMessage matches entries whose message equals msg.
func WithMessage(msg string) Predicate {
	return func(e Entry) bool { return e.message == msg }
}

// MessageContains matches entries whose message contains sub.
func MessageContains(sub string) Predicate {
	return func(e Entry) bool { return strings.Contains(e.message, sub) }
}

// WithLevel matches entries at the given level.
func WithLevel(level zapcore.Level) Predicate {
	return func(e Entry) bool { return e.level == level }
}

// WithField matches entries whose field key equals want.
func WithField(key string, want any) Predicate {
	return func(e Entry) bool {
		v, ok := e.fields[key]
		if !ok {
			return false
		}
		return reflect.DeepEqual(v, want)
	}
}

// FieldMatches matches entries for which fn returns true on the field
// value. Entries missing the key never match.
func FieldMatches(key string, fn func(any) bool) Predicate {
	return func(e Entry) bool {
		v, ok := e.fields[key]
		if !ok {
			return false
		}
		return fn(v)
	}
}

// Find returns all entries satisfying every predicate, in emission order.
func (s *Sink) Find(preds ...Predicate) []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if matchAll(e, preds) {
			out = append(out, e)
		}
	}
	return out
}

// FindFirst returns the first entry satisfying every predicate.
// An empty sink or no match yields (Entry{}, false), never an error.
func (s *Sink) FindFirst(preds ...Predicate) (Entry, bool) {
	for _, e := range s.Entries() {
		if matchAll(e, preds) {
			return e, true
		}
	}
	return Entry{}, false
}

func matchAll(e Entry, preds []Predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}
