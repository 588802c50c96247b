package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration())
}

func TestDuration_UnmarshalText_Negative(t *testing.T) {
	var d Duration
	err := d.UnmarshalText([]byte("-5s"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
}

func TestDuration_UnmarshalText_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(15 * time.Second)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "15s", string(text))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"15s"`, string(data))
}

func TestSecret_NeverSerializesValue(t *testing.T) {
	s := Secret("super-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "Secret([REDACTED])", s.GoString())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(data))

	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[REDACTED]", string(text))
}

func TestSecret_ValueAccess(t *testing.T) {
	s := Secret("super-secret")
	assert.Equal(t, "super-secret", s.Value())
	assert.True(t, s.IsSet())

	var empty Secret
	assert.False(t, empty.IsSet())
	assert.Equal(t, "", empty.String())
}
