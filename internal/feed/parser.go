// Package feed pulls and decodes the upstream CWWP status documents. The
// upstream occasionally emits byte-order marks, NUL bytes, trailing commas,
// and truncated wrapper objects, so decoding falls back through a repair
// ladder before giving up on a district's data.
package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

// ErrParse marks a payload that could not be decoded by any recovery stage.
var ErrParse = errors.New("unparseable feed payload")

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// Envelope is the top-level feed document: a data array of wrapped records.
type Envelope struct {
	Data []domain.Item `json:"data"`
}

// Decode parses a raw feed body into its envelope. Stages, each tried only
// when the previous fails:
//
//  1. Strict parse.
//  2. Strip a leading BOM and embedded NULs, drop trailing commas before a
//     closing brace or bracket, retry.
//  3. Find the "data" key's array by bracket scanning and parse the balanced
//     span alone.
//
// When every stage fails the returned error wraps ErrParse and carries the
// strict parse error from stage 1.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	strictErr := json.Unmarshal(raw, &env)
	if strictErr == nil {
		return env, nil
	}

	cleaned := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	cleaned = bytes.ReplaceAll(cleaned, []byte{0}, nil)
	cleaned = trailingCommaRe.ReplaceAll(cleaned, []byte("$1"))

	env = Envelope{}
	if err := json.Unmarshal(cleaned, &env); err == nil {
		return env, nil
	}

	if span, ok := dataArraySpan(cleaned); ok {
		var items []domain.Item
		if err := json.Unmarshal(span, &items); err == nil {
			return Envelope{Data: items}, nil
		}
	}

	return Envelope{}, fmt.Errorf("%w: %v", ErrParse, strictErr)
}

// dataArraySpan locates the balanced [...] span of the "data" key. Brackets
// only count outside quoted strings; a quote toggles string state unless the
// previous byte escaped it.
func dataArraySpan(b []byte) ([]byte, bool) {
	keyIdx := bytes.Index(b, []byte(`"data"`))
	if keyIdx == -1 {
		return nil, false
	}

	start := bytes.IndexByte(b[keyIdx:], '[')
	if start == -1 {
		return nil, false
	}
	start += keyIdx

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(b); i++ {
		c := b[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return b[start : i+1], true
				}
			}
		}
	}
	return nil, false
}
