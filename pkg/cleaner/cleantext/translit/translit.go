// Package translit turns unicode text into its closest ASCII spelling.
//
// The generic step is pluggable through the Transliterator interface. Around
// it, Translit keeps emoji intact through a textual alias and keeps the
// letters of a language profile (German umlauts, Nordic vowels) untouched.
package translit

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/patterns"
)

// Transliterator maps arbitrary unicode text to ASCII, best effort.
type Transliterator interface {
	// ToASCII must be safe for concurrent use.
	ToASCII(text string) string
	Name() string
}

// Unidecode transliterates with hand-tuned per-character tables covering
// most scripts and symbols.
type Unidecode struct{}

func (Unidecode) ToASCII(text string) string { return unidecode.Unidecode(text) }

func (Unidecode) Name() string { return "unidecode" }

// Fallback strips diacritics by compatibility decomposition and drops what
// is left outside ASCII. Non-Latin scripts are lost.
type Fallback struct{}

func (Fallback) ToASCII(text string) string {
	// transform chains are stateful, so build one per call
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

func (Fallback) Name() string { return "fallback" }

var defaultTransliterator Transliterator = Unidecode{}

// Default returns the transliterator used when none is injected.
func Default() Transliterator {
	return defaultTransliterator
}

// Translit runs the full ASCII conversion around a Transliterator.
type Translit struct {
	t Transliterator
}

// New returns a Translit using t, or Default when t is nil.
func New(t Transliterator) *Translit {
	if t == nil {
		t = Default()
	}
	return &Translit{t: t}
}

// Name reports the underlying transliterator.
func (x *Translit) Name() string {
	return x.t.Name()
}

// Transliterate converts text to ASCII. Quote glyphs are normalized first.
// With keepEmoji set, emoji survive unchanged; otherwise they are removed.
// Letters in the profile of lang keep their original form.
func (x *Translit) Transliterate(text string, lang Language, keepEmoji bool) string {
	text = patterns.QuoteReplacer.Replace(text)

	var aliases *strings.Replacer
	if keepEmoji {
		text, aliases = EncodeEmoji(text)
	} else {
		text = RemoveEmoji(text)
	}

	var restore *strings.Replacer
	if p, ok := profiles[lang]; ok {
		text, restore = p.escape(text)
	}

	text = x.t.ToASCII(text)

	if restore != nil {
		text = restore.Replace(text)
	}
	if aliases != nil {
		text = aliases.Replace(text)
	}
	return text
}

// Transliterate converts text with the default transliterator.
func Transliterate(text string, lang Language, keepEmoji bool) string {
	return New(nil).Transliterate(text, lang, keepEmoji)
}
