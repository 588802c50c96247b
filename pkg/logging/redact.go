// pkg/logging/redact.go
package logging

import (
	"fmt"
	"regexp"
)

// RedactedSentinel replaces the value of any field matching the
// redaction deny-list. Redacted values are never recoverable.
const RedactedSentinel = "[REDACTED]"

// RedactionConfig controls sensitive field masking.
type RedactionConfig struct {
	Enabled bool `koanf:"enabled"`
	// Fields are exact, case-sensitive field names.
	Fields []string `koanf:"fields"`
	// Patterns are regular expressions matched against field names.
	Patterns []string `koanf:"patterns"`
}

// Redactor masks sensitive fields before an entry is considered
// emitted, i.e. before it reaches the sink or a real backend.
type Redactor struct {
	exact    map[string]bool
	patterns []*regexp.Regexp
}

// NewRedactor compiles a redactor from config.
// Returns error if any pattern fails to compile.
func NewRedactor(cfg RedactionConfig) (*Redactor, error) {
	if !cfg.Enabled {
		return &Redactor{}, nil
	}

	exact := make(map[string]bool, len(cfg.Fields))
	for _, f := range cfg.Fields {
		exact[f] = true
	}

	var patterns []*regexp.Regexp
	for _, p := range cfg.Patterns {
		// Basic ReDoS protection: reject patterns longer than 200 chars
		if len(p) > 200 {
			return nil, fmt.Errorf("redaction pattern too long (max 200 chars): %q", p)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	return &Redactor{
		exact:    exact,
		patterns: patterns,
	}, nil
}

// ShouldRedact returns true if the field name matches the deny-list.
func (r *Redactor) ShouldRedact(name string) bool {
	if r.exact[name] {
		return true
	}
	for _, re := range r.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Apply returns a new mapping with matched field values replaced by
// the sentinel. Idempotent: re-applying to already-redacted fields
// yields the same mapping.
func (r *Redactor) Apply(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if r.ShouldRedact(k) {
			out[k] = RedactedSentinel
			continue
		}
		out[k] = v
	}
	return out
}
