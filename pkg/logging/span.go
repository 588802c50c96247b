// pkg/logging/span.go
package logging

import (
	"time"
)

// Span is one timed unit of work. It pushes an ambient frame for its
// duration and, on End, emits exactly one INFO entry with span_name
// and duration_ms plus its attributes, merged with ambient context per
// the usual emit rules.
//
// Spans nest through the shared stack; correlation between nested
// spans happens only through ambient keys the caller sets, never
// through implicit parent or trace IDs.
type Span struct {
	logger *Logger
	name   string
	attrs  Fields
	start  time.Time
	token  Token
	ended  bool
}

// StartSpan opens a span. Close it with defer so failure paths still
// emit the summary entry:
//
//	span := logger.StartSpan("index-repository", logging.Fields{"repo": url})
//	defer span.End()
func (l *Logger) StartSpan(name string, attrs ...Fields) *Span {
	merged := make(Fields)
	for _, f := range attrs {
		for k, v := range f {
			merged[k] = v
		}
	}
	return &Span{
		logger: l,
		name:   name,
		attrs:  merged,
		// time.Now carries a monotonic reading; time.Since is immune
		// to wall-clock adjustment.
		start: time.Now(),
		token: l.stack.Push(Fields{"span": name}),
	}
}

// End pops the span's frame and emits its summary entry. Duration is
// computed once, on a monotonic clock, and is never negative.
// End is idempotent: calls after the first are no-ops.
func (sp *Span) End() {
	if sp.ended {
		return
	}
	sp.ended = true

	elapsed := time.Since(sp.start)
	if elapsed < 0 {
		elapsed = 0
	}

	sp.logger.stack.Pop(sp.token)

	fields := sp.attrs.clone()
	fields["span_name"] = sp.name
	fields["duration_ms"] = float64(elapsed) / float64(time.Millisecond)
	sp.logger.Info(sp.name, fields)
}
