// Package aijson decodes semi-structured model output into typed values.
// Generation models are not contractually guaranteed to emit well-formed
// JSON, so decoding is a three-tier fallback chain: strip markdown fences
// and decode, extract the first balanced object and decode, then give up
// and return the caller's default. A formatting slip upstream must never
// fail the operation that asked for the decode.
package aijson

import (
	"encoding/json"
	"strings"
)

// Decode attempts the tiers in order and stops at the first success.
// valid may be nil; when set, a decode whose result fails it is treated as
// a parse failure and falls through to the next tier. The fallback is
// returned as-is, so callers control what "empty" looks like.
func Decode[T any](raw string, fallback T, valid func(T) bool) T {
	stripped := StripFences(raw)
	if v, ok := tryDecode(stripped, valid); ok {
		return v
	}
	// Tier 2 scans the fence-stripped text, so a stray brace in prose
	// outside the fences can't shadow the real object.
	if span, ok := firstObject(stripped); ok {
		if v, ok := tryDecode(span, valid); ok {
			return v
		}
	}
	return fallback
}

func tryDecode[T any](s string, valid func(T) bool) (T, bool) {
	var v T
	if s == "" || json.Unmarshal([]byte(s), &v) != nil {
		var zero T
		return zero, false
	}
	if valid != nil && !valid(v) {
		var zero T
		return zero, false
	}
	return v, true
}

// StripFences removes leading/trailing markdown code-fence markers such as
// ```json ... ``` and returns the trimmed inner text.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// drop a language tag like "json" on the opening fence
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			first := strings.TrimSpace(s[:i])
			if first == "" || isFenceTag(first) {
				s = s[i+1:]
			}
		}
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		t := strings.TrimSpace(s)
		s = t[:len(t)-3]
	}

	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// firstObject returns the first balanced {...} span in s, honoring JSON
// string literals and escapes so braces inside strings don't end the span.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
