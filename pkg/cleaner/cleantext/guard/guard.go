// Package guard shields caller-chosen substrings from the cleaning passes.
//
// Protect swaps every match of the exception patterns for an inert
// placeholder made only of lower-case ASCII letters, so that case folding,
// punctuation removal, transliteration and the entity passes leave it alone.
// Restore puts the original text back once every other pass has run.
package guard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNamespaceExhausted is returned when a text needs more placeholders than
// the fixed-width counter can address.
var ErrNamespaceExhausted = errors.New("guard: placeholder namespace exhausted")

const (
	basePrefix = "zxqcleantextguard"
	suffix     = "qxz"

	// counterWidth fixes every placeholder to the same length so that no
	// placeholder is a substring of another.
	counterWidth = 5
	maxRecords   = 26 * 26 * 26 * 26 * 26
)

// Record remembers one protected span.
type Record struct {
	// Token is the placeholder that replaced the span.
	Token string
	// Original is the substring as it appeared when it was protected.
	Original string
	// Offset and Length locate the span in the text the pattern ran on.
	// Later passes move it, so Restore finds the Token instead.
	Offset int
	Length int
	// Pattern is the index of the exception pattern that matched.
	Pattern int
}

// Records is the ordered result of Protect, in insertion order.
type Records []Record

// Protect replaces the non-overlapping matches of each pattern, in the order
// given, with placeholders. Each pattern runs on the output of the previous
// one, so an earlier pattern wins any overlap.
func Protect(text string, patterns []*regexp.Regexp) (string, Records, error) {
	if len(patterns) == 0 {
		return text, nil, nil
	}

	prefix := namespace(text)
	var records Records
	for pi, re := range patterns {
		locs := re.FindAllStringIndex(text, -1)
		// back to front so pending offsets stay valid
		for i := len(locs) - 1; i >= 0; i-- {
			start, end := locs[i][0], locs[i][1]
			if start == end {
				continue
			}
			if len(records) >= maxRecords {
				return "", nil, ErrNamespaceExhausted
			}
			token := prefix + encodeCounter(len(records)) + suffix
			records = append(records, Record{
				Token:    token,
				Original: text[start:end],
				Offset:   start,
				Length:   end - start,
				Pattern:  pi,
			})
			text = text[:start] + token + text[end:]
		}
	}
	return text, records, nil
}

// Restore replaces each placeholder by its original text, wherever the
// passes in between moved it. Records are undone newest first, which also
// unwraps a span protected by a later pattern that swallowed an earlier
// placeholder.
func Restore(text string, records Records) string {
	for i := len(records) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, records[i].Token, records[i].Original)
	}
	return text
}

// Compile compiles exception patterns in order, naming the first one that
// fails.
func Compile(exprs []string) ([]*regexp.Regexp, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("exception %d %q: %w", i, expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// namespace picks a placeholder prefix that does not occur in text, in any
// letter case, so placeholders cannot collide with content.
func namespace(text string) string {
	lower := strings.ToLower(text)
	prefix := basePrefix
	for strings.Contains(lower, prefix) {
		prefix += "z"
	}
	return prefix
}

// encodeCounter writes n in base 26 using a..z, left padded to counterWidth.
func encodeCounter(n int) string {
	var b [counterWidth]byte
	for i := counterWidth - 1; i >= 0; i-- {
		b[i] = byte('a' + n%26)
		n /= 26
	}
	return string(b[:])
}
