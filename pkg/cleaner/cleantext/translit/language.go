package translit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownLanguage is returned for a tag that is not a BCP 47 language.
var ErrUnknownLanguage = errors.New("translit: unknown language tag")

// Language is a language with a letter profile, or Generic.
type Language string

const (
	Generic   Language = ""
	Danish    Language = "da"
	German    Language = "de"
	Spanish   Language = "es"
	Faroese   Language = "fo"
	French    Language = "fr"
	Icelandic Language = "is"
	Italian   Language = "it"
	Norwegian Language = "no"
	Sami      Language = "se"
	Swedish   Language = "sv"
)

// ParseLanguage resolves a tag such as "de", "DE" or "de-AT" to its profile.
// Valid languages without a profile, and the empty tag, resolve to Generic.
func ParseLanguage(tag string) (Language, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Generic, nil
	}
	t, err := language.Raw.Parse(tag)
	if err != nil {
		return Generic, fmt.Errorf("%w %q: %v", ErrUnknownLanguage, tag, err)
	}
	base, _ := t.Base()
	l := Language(base.String())
	if _, ok := profiles[l]; ok {
		return l, nil
	}
	return Generic, nil
}

// Languages lists the languages that carry a profile.
func Languages() []Language {
	out := make([]Language, 0, len(profiles))
	for l := range profiles {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Letters returns the glyphs the profile of l preserves, in substitution
// order, mapped to their ASCII spelling.
func Letters(l Language) [][2]string {
	p, ok := profiles[l]
	if !ok {
		return nil
	}
	out := make([][2]string, len(p))
	for i, e := range p {
		out[i] = [2]string{e.glyph, e.ascii}
	}
	return out
}

type letter struct {
	glyph string
	ascii string
}

type profile []letter

const (
	surrogatePrefix = "zqxletter"
	surrogateSuffix = "qz"
)

// escape swaps each profile glyph for a letters-only surrogate that no
// transliterator alters, and returns the replacer that undoes it.
func (p profile) escape(text string) (string, *strings.Replacer) {
	text = norm.NFC.String(text)

	lower := strings.ToLower(text)
	prefix := surrogatePrefix
	for strings.Contains(lower, prefix) {
		prefix += "z"
	}

	back := make([]string, 0, 2*len(p))
	for i, l := range p {
		token := prefix + string([]byte{byte('a' + i/26), byte('a' + i%26)}) + surrogateSuffix
		text = strings.ReplaceAll(text, l.glyph, token)
		back = append(back, token, l.glyph)
	}
	return text, strings.NewReplacer(back...)
}

// newProfile orders case-sensitive letters first, then case-insensitive
// letters in lower case, then the same in upper case.
func newProfile(insensitive, sensitive [][2]string) profile {
	var p profile
	seen := map[string]bool{}
	add := func(glyph, ascii string) {
		glyph = norm.NFC.String(glyph)
		if seen[glyph] {
			return
		}
		seen[glyph] = true
		p = append(p, letter{glyph: glyph, ascii: ascii})
	}
	for _, l := range sensitive {
		add(l[0], l[1])
	}
	for _, l := range insensitive {
		add(strings.ToLower(l[0]), l[1])
	}
	for _, l := range insensitive {
		add(strings.ToUpper(l[0]), strings.ToUpper(l[1]))
	}
	return p
}

var profiles = map[Language]profile{
	German: newProfile(
		[][2]string{{"ä", "ae"}, {"ü", "ue"}, {"ö", "oe"}},
		[][2]string{{"ß", "ss"}},
	),
	Danish: newProfile(
		[][2]string{{"é", "e"}, {"æ", "ae"}, {"ø", "oe"}, {"å", "aa"}},
		nil,
	),
	Spanish: newProfile(
		[][2]string{{"á", "a"}, {"é", "e"}, {"í", "i"}, {"ó", "o"}, {"ú", "u"}, {"ñ", "n"}},
		nil,
	),
	Faroese: newProfile(
		[][2]string{{"á", "a"}, {"ð", "d"}, {"í", "i"}, {"ó", "o"}, {"ú", "u"}, {"æ", "ae"}, {"ø", "oe"}},
		nil,
	),
	French: newProfile(
		[][2]string{
			{"é", "e"}, {"à", "a"}, {"è", "e"}, {"ù", "u"}, {"â", "a"}, {"ê", "e"}, {"î", "i"},
			{"ô", "o"}, {"û", "u"}, {"ë", "e"}, {"ï", "i"}, {"ü", "u"}, {"ÿ", "y"}, {"ç", "c"},
		},
		nil,
	),
	Icelandic: newProfile(
		[][2]string{
			{"á", "a"}, {"ð", "d"}, {"é", "e"}, {"í", "i"}, {"ó", "o"},
			{"ú", "u"}, {"ý", "y"}, {"þ", "th"}, {"æ", "ae"}, {"ö", "oe"},
		},
		nil,
	),
	Italian: newProfile(
		[][2]string{
			{"á", "a"}, {"é", "e"}, {"í", "i"}, {"ó", "o"}, {"ú", "u"},
			{"à", "a"}, {"è", "e"}, {"ì", "i"}, {"ò", "o"}, {"ù", "u"},
		},
		nil,
	),
	Norwegian: newProfile(
		[][2]string{
			{"é", "e"}, {"ó", "o"}, {"è", "e"}, {"ò", "o"}, {"ù", "u"},
			{"ê", "e"}, {"ô", "o"}, {"æ", "ae"}, {"ø", "oe"}, {"å", "aa"},
		},
		nil,
	),
	Swedish: newProfile(
		[][2]string{
			{"á", "a"}, {"é", "e"}, {"í", "i"}, {"ó", "o"}, {"ú", "u"}, {"è", "e"},
			{"ý", "y"}, {"ò", "o"}, {"ù", "u"}, {"ê", "e"}, {"ô", "o"}, {"ð", "d"},
			{"þ", "th"}, {"æ", "ae"}, {"ø", "oe"}, {"å", "aa"}, {"ä", "ae"}, {"ö", "oe"},
		},
		nil,
	),
	Sami: newProfile(
		[][2]string{{"å", "aa"}, {"ä", "ae"}, {"ö", "oe"}},
		nil,
	),
}
