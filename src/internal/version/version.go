// Package version orders loosely formatted version strings such as
// "1.3.1", "10.2-beta_3" or "1.3.1a323423TESTING".
package version

import (
	"strings"
)

// Version is a version string split into its components.
type Version struct {
	raw    string
	tokens []token
}

type token struct {
	text    string
	numeric bool
	// value is the numeric text without leading zeros ("" for zero).
	value string
}

// Parse splits a version string on '.', '-' and '_'.
// Every component is either purely numeric or alphanumeric text.
func Parse(s string) Version {
	parts := strings.FieldsFunc(s, func(c rune) bool {
		return c == '.' || c == '-' || c == '_'
	})

	tokens := make([]token, 0, len(parts))
	for _, part := range parts {
		tokens = append(tokens, newToken(part))
	}

	return Version{raw: s, tokens: tokens}
}

func newToken(part string) token {
	for _, c := range part {
		if c < '0' || c > '9' {
			return token{text: part}
		}
	}
	return token{text: part, numeric: true, value: strings.TrimLeft(part, "0")}
}

// String returns the version as it was parsed.
func (v Version) String() string {
	return v.raw
}

// Compare returns -1 if v < w, 0 if they have identical components and +1
// if v > w.
//
// Rules, applied component by component:
//   - numeric vs numeric compares by value, then by text ("01" < "1")
//   - text vs text compares lexically
//   - numeric is always less than text
//
// When one version is a prefix of the other, the longer one is greater.
func (v Version) Compare(w Version) int {
	for i := 0; i < len(v.tokens) && i < len(w.tokens); i++ {
		if c := compareTokens(v.tokens[i], w.tokens[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(v.tokens) < len(w.tokens):
		return -1
	case len(v.tokens) > len(w.tokens):
		return 1
	}
	return 0
}

func compareTokens(a, b token) int {
	switch {
	case a.numeric && b.numeric:
		if c := compareNumeric(a.value, b.value); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

// compareNumeric compares digit strings without leading zeros, so
// components of any length compare without overflow.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
