package domain

import (
	"encoding/json"
	"strings"
)

// NotReported is the upstream sentinel written in place of any field whose
// value is unavailable.
const NotReported = "Not Reported"

// Reported is an optional that absorbs the feed's sentinel convention.
// A field may legitimately hold its nominal type, the string "Not Reported",
// an empty string, null, or a string-encoded numeric/boolean ("true", "42").
// All of those decode without error; Known reports whether a usable value
// was present.
type Reported[T any] struct {
	Value T
	Known bool
}

// ReportedValue wraps a known value, mainly for fixtures and tests.
func ReportedValue[T any](v T) Reported[T] {
	return Reported[T]{Value: v, Known: true}
}

// Or returns the value when known, otherwise the fallback.
func (r Reported[T]) Or(fallback T) T {
	if r.Known {
		return r.Value
	}
	return fallback
}

func (r *Reported[T]) UnmarshalJSON(data []byte) error {
	var zero T
	r.Value = zero
	r.Known = false

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" || s == NotReported {
			return nil
		}
		if v, ok := any(&r.Value).(*string); ok {
			*v = s
			r.Known = true
			return nil
		}
		// Numerics and booleans frequently arrive string-encoded
		// ("true", "65535"). Re-parse the quoted content; anything
		// unparseable counts as unreported rather than an error.
		if err := json.Unmarshal([]byte(s), &r.Value); err != nil {
			r.Value = zero
			return nil
		}
		r.Known = true
		return nil
	}

	if err := json.Unmarshal(data, &r.Value); err != nil {
		r.Value = zero
		return nil
	}
	r.Known = true
	return nil
}

// MarshalJSON writes the value when known and the upstream sentinel when
// not, so fixtures generated from this model look like real feed payloads.
func (r Reported[T]) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return json.Marshal(NotReported)
	}
	return json.Marshal(r.Value)
}
