// pkg/logging/testing.go
package logging

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"
)

// NewCapture creates a capture-only Logger for one test scope. The
// sink is cleared at test cleanup so entries never leak into a
// subsequent scope.
func NewCapture(tb testing.TB, opts ...Option) (*Logger, *Sink) {
	tb.Helper()
	logger, err := New(NewDefaultConfig(), opts...)
	if err != nil {
		tb.Fatalf("failed to create capture logger: %v", err)
	}
	tb.Cleanup(logger.sink.Reset)
	return logger, logger.sink
}

// RealBackendEnv is the switch enabling the real backend during a run.
// It is the same key the config loader maps to telemetry.enabled, so
// one switch governs both the CLI and test gating.
const RealBackendEnv = "LOGBRIDGE_TELEMETRY_ENABLED"

var (
	backendProbeOnce sync.Once
	backendAvailable bool
)

// RealBackendAvailable reports whether the real backend is enabled for
// this process. Decided once at first use and never re-evaluated
// mid-run.
func RealBackendAvailable() bool {
	backendProbeOnce.Do(func() {
		v := os.Getenv(RealBackendEnv)
		backendAvailable = v == "1" || strings.EqualFold(v, "true")
	})
	return backendAvailable
}

// RequireRealBackend gates tests that need a real backend. In strict
// mode the test is skipped with a reason when the backend is absent;
// in non-strict mode it returns false and the test proceeds against
// the mock path.
func RequireRealBackend(tb testing.TB, strict bool) bool {
	tb.Helper()
	if RealBackendAvailable() {
		return true
	}
	if strict {
		tb.Skipf("real telemetry backend not available (set %s=true)", RealBackendEnv)
	}
	return false
}

// AssertLogged verifies an entry at level containing message exists.
func (s *Sink) AssertLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	if _, ok := s.FindFirst(WithLevel(level), MessageContains(msgContains)); ok {
		return
	}
	tb.Errorf("expected entry at %v containing %q, entries: %s", level, msgContains, s.dump())
}

// AssertNotLogged verifies no entry at level containing message exists.
func (s *Sink) AssertNotLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	if e, ok := s.FindFirst(WithLevel(level), MessageContains(msgContains)); ok {
		tb.Errorf("unexpected entry at %v containing %q: %q", level, msgContains, e.Message())
	}
}

// AssertField verifies the first entry with message msg carries
// field key=expected.
func (s *Sink) AssertField(tb testing.TB, msg, key string, expected any) {
	tb.Helper()
	for _, e := range s.Find(WithMessage(msg)) {
		if v, ok := e.Field(key); ok && reflect.DeepEqual(v, expected) {
			return
		}
	}
	tb.Errorf("field %q=%v not found in message %q, entries: %s", key, expected, msg, s.dump())
}

// AssertNoSecrets verifies every deny-listed field in the sink is
// redacted.
func (s *Sink) AssertNoSecrets(tb testing.TB) {
	tb.Helper()
	sensitive := []string{"password", "secret", "token", "api_key", "authorization", "bearer", "credential", "private_key"}
	for _, e := range s.Entries() {
		for key, v := range e.fields {
			keyLower := strings.ToLower(key)
			for _, name := range sensitive {
				if !strings.Contains(keyLower, name) {
					continue
				}
				if str, ok := v.(string); !ok || (str != RedactedSentinel && str != "") {
					tb.Errorf("sensitive field %q not redacted: %v", key, v)
				}
			}
		}
	}
}

func (s *Sink) dump() string {
	var b strings.Builder
	for _, e := range s.Entries() {
		fmt.Fprintf(&b, "\n  [%v] %q %v", e.level, e.message, e.fields)
	}
	return b.String()
}
