// pkg/logging/entry.go
package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Fields is an open mapping of event field names to values.
type Fields map[string]any

// clone returns a shallow copy. Safe to call on a nil map.
func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Entry is one emitted log event. Entries are immutable after
// construction: named accessors and Field read the same backing map,
// and Fields returns a defensive copy.
type Entry struct {
	message   string
	level     zapcore.Level
	timestamp time.Time
	fields    Fields
}

// newEntry constructs an Entry, taking ownership of fields.
// Values the storage layer cannot represent are stringified, never dropped.
func newEntry(level zapcore.Level, message string, fields Fields, ts time.Time) Entry {
	normalized := make(Fields, len(fields))
	for k, v := range fields {
		normalized[k] = normalizeValue(v)
	}
	return Entry{
		message:   message,
		level:     level,
		timestamp: ts,
		fields:    normalized,
	}
}

// Message returns the event message.
func (e Entry) Message() string { return e.message }

// Level returns the event level.
func (e Entry) Level() zapcore.Level { return e.level }

// Timestamp returns the time the entry was constructed.
func (e Entry) Timestamp() time.Time { return e.timestamp }

// Field returns the value for key and whether it is present.
func (e Entry) Field(key string) (any, bool) {
	v, ok := e.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (e Entry) Has(key string) bool {
	_, ok := e.fields[key]
	return ok
}

// Fields returns a copy of the event fields.
func (e Entry) Fields() Fields {
	return e.fields.clone()
}

// normalizeValue coerces values into the shapes the sink can represent:
// primitives, nested Fields/maps, and slices. Everything else is
// stringified via errors, Stringer, or fmt.Sprint.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, bool, string,
		int, int32, int64, uint, uint32, uint64,
		float32, float64,
		time.Time, time.Duration:
		return val
	case Fields:
		out := make(Fields, len(val))
		for k, nested := range val {
			out[k] = normalizeValue(nested)
		}
		return out
	case map[string]any:
		out := make(Fields, len(val))
		for k, nested := range val {
			out[k] = normalizeValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = normalizeValue(nested)
		}
		return out
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
