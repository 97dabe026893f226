package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Context decides whether a raw regex match at text[start:end] is accepted.
// It stands in for the look-around assertions RE2 does not support.
type Context func(text string, start, end int) bool

// Pattern is a compiled regular expression with optional context checks on
// the text surrounding each match.
type Pattern struct {
	re      *regexp.Regexp
	accepts []Context
}

// Compile compiles expr and attaches the given context checks.
// It panics if expr is invalid; table patterns are compiled at init.
func Compile(expr string, accepts ...Context) *Pattern {
	return &Pattern{re: regexp.MustCompile(expr), accepts: accepts}
}

// CompileLongest is like Compile but prefers leftmost-longest matches.
func CompileLongest(expr string, accepts ...Context) *Pattern {
	re := regexp.MustCompile(expr)
	re.Longest()
	return &Pattern{re: re, accepts: accepts}
}

// Wrap builds a Pattern from an already compiled expression.
func Wrap(re *regexp.Regexp, accepts ...Context) *Pattern {
	return &Pattern{re: re, accepts: accepts}
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// FindAllIndex returns the non-overlapping, non-empty, accepted matches in
// text as [start, end) byte offsets, in increasing order.
func (p *Pattern) FindAllIndex(text string) [][]int {
	var out [][]int
	pos := 0
	for pos <= len(text) {
		loc := p.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if start == end || !p.accepted(text, start, end) {
			if start >= len(text) {
				break
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		out = append(out, []int{start, end})
		pos = end
	}
	return out
}

// MatchString reports whether text contains an accepted match.
func (p *Pattern) MatchString(text string) bool {
	if len(p.accepts) == 0 {
		return p.re.MatchString(text)
	}
	return len(p.FindAllIndex(text)) > 0
}

// ReplaceAll replaces every accepted match with the literal repl.
func (p *Pattern) ReplaceAll(text, repl string) string {
	if len(p.accepts) == 0 {
		return p.re.ReplaceAllLiteralString(text, repl)
	}
	locs := p.FindAllIndex(text)
	if len(locs) == 0 {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, loc := range locs {
		sb.WriteString(text[last:loc[0]])
		sb.WriteString(repl)
		last = loc[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func (p *Pattern) accepted(text string, start, end int) bool {
	for _, accept := range p.accepts {
		if !accept(text, start, end) {
			return false
		}
	}
	return true
}

// NotAfter accepts a match unless the rune right before it satisfies reject.
func NotAfter(reject func(rune) bool) Context {
	return func(text string, start, _ int) bool {
		if start == 0 {
			return true
		}
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		return !reject(r)
	}
}

// NotBefore accepts a match unless the rune right after it satisfies reject.
func NotBefore(reject func(rune) bool) Context {
	return func(text string, _, end int) bool {
		if end >= len(text) {
			return true
		}
		r, _ := utf8.DecodeRuneInString(text[end:])
		return !reject(r)
	}
}

// IsWordRune matches the unicode-aware \w class.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// wordOr returns a predicate matching word runes and any of extra.
func wordOr(extra string) func(rune) bool {
	return func(r rune) bool {
		return IsWordRune(r) || strings.ContainsRune(extra, r)
	}
}
