// Package filter provides the atomic predicate checks the validators are
// built from. Every filter is a pure function of its configured parameters
// and the input value.
package filter

import "unicode"

// AllowedChars reports whether every character of a value is a Unicode
// letter or digit, or belongs to the configured extra set.
type AllowedChars struct {
	extra map[rune]struct{}
}

// NewAllowedChars builds a filter permitting the given extra characters
// on top of letters and digits
func NewAllowedChars(extra string) AllowedChars {
	set := make(map[rune]struct{}, len(extra))
	for _, r := range extra {
		set[r] = struct{}{}
	}
	return AllowedChars{extra: set}
}

// Apply returns true iff every rune of value is allowed
func (f AllowedChars) Apply(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if _, ok := f.extra[r]; !ok {
			return false
		}
	}
	return true
}

// Length checks that a value's rune count is within [Min, Max] inclusive
type Length struct {
	Min int
	Max int
}

// Apply returns true iff Min <= len(value) <= Max, counting runes
func (f Length) Apply(value string) bool {
	n := 0
	for range value {
		n++
	}
	return n >= f.Min && n <= f.Max
}

// Count checks that a sequence's element count is within [Min, Max] inclusive
type Count struct {
	Min int
	Max int
}

// Apply returns true iff Min <= n <= Max
func (f Count) Apply(n int) bool {
	return n >= f.Min && n <= f.Max
}

// NotEmpty returns true iff value is non-empty
func NotEmpty(value string) bool {
	return value != ""
}

// Empty returns true iff value is empty. Used as a "nothing to process"
// guard, not a validity check.
func Empty(value string) bool {
	return value == ""
}
