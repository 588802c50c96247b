package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRedactor(t *testing.T) *Redactor {
	t.Helper()
	r, err := NewRedactor(NewDefaultConfig().Redaction)
	require.NoError(t, err)
	return r
}

func TestRedactor_DenyListNames(t *testing.T) {
	r := defaultRedactor(t)

	for _, name := range []string{"password", "token", "secret", "authorization"} {
		assert.True(t, r.ShouldRedact(name), "default deny-list must cover %q", name)
	}
	assert.False(t, r.ShouldRedact("username"))
}

func TestRedactor_ExactMatchIsCaseSensitive(t *testing.T) {
	r := defaultRedactor(t)

	assert.True(t, r.ShouldRedact("password"))
	assert.False(t, r.ShouldRedact("Password"), "exact matching is case-sensitive")
}

func TestRedactor_PatternMatch(t *testing.T) {
	r := defaultRedactor(t)

	assert.True(t, r.ShouldRedact("db_secret"), "suffix pattern must match")
	assert.True(t, r.ShouldRedact("X-API-KEY"), "case-insensitive pattern must match")
	assert.False(t, r.ShouldRedact("secrets_total"))
}

func TestRedactor_ApplyReplacesWithSentinel(t *testing.T) {
	r := defaultRedactor(t)

	in := Fields{"password": "secret123", "user": "alice"}
	out := r.Apply(in)

	assert.Equal(t, RedactedSentinel, out["password"])
	assert.Equal(t, "alice", out["user"])
	assert.Equal(t, "secret123", in["password"], "input mapping must not be mutated")
}

func TestRedactor_ApplyIsIdempotent(t *testing.T) {
	r := defaultRedactor(t)

	once := r.Apply(Fields{"token": "tok-1", "user": "bob"})
	twice := r.Apply(once)

	assert.Equal(t, once, twice)
}

func TestRedactor_Disabled(t *testing.T) {
	r, err := NewRedactor(RedactionConfig{Enabled: false})
	require.NoError(t, err)

	out := r.Apply(Fields{"password": "plain"})
	assert.Equal(t, "plain", out["password"])
}

func TestNewRedactor_InvalidPattern(t *testing.T) {
	_, err := NewRedactor(RedactionConfig{
		Enabled:  true,
		Patterns: []string{`_secret$`, "[invalid("},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redaction pattern")
	assert.Contains(t, err.Error(), "[invalid(")
}

func TestNewRedactor_PatternTooLong(t *testing.T) {
	_, err := NewRedactor(RedactionConfig{
		Enabled:  true,
		Patterns: []string{strings.Repeat("a", 201)},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pattern too long")
}
