// Package unicodefix repairs broken unicode in human-authored text.
//
// Repair is best-effort: every step that can fail (escape decoding, mojibake
// re-decoding) falls back to its input unchanged. Running it on text that is
// already clean is a no-op.
package unicodefix

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Options selects the repair steps.
type Options struct {
	// Form is the final normalization form. The zero value is NFC.
	Form norm.Form

	// DecodeEscapes interprets backslash escapes such as \u2018 or \xe9.
	DecodeEscapes bool

	// UnescapeHTML decodes HTML entities, unless the text contains "<".
	UnescapeHTML bool

	// UncurlQuotes turns curly quotes into ASCII quotes.
	UncurlQuotes bool
}

// DefaultOptions enables every step with NFC output.
func DefaultOptions() Options {
	return Options{
		Form:          norm.NFC,
		DecodeEscapes: true,
		UnescapeHTML:  true,
		UncurlQuotes:  true,
	}
}

// Fix repairs text with DefaultOptions.
func Fix(text string) string {
	return Repair(text, DefaultOptions())
}

// maxPasses bounds Repair on text that keeps changing, such as escapes
// nested many levels deep.
const maxPasses = 8

// Repair runs the repair steps selected by opts until the text stops
// changing, so one call undoes nested layers like "&amp;amp;" or `\\n`.
func Repair(text string, opts Options) string {
	if text == "" {
		return text
	}
	for i := 0; i < maxPasses; i++ {
		fixed := repairOnce(text, opts)
		if fixed == text {
			break
		}
		text = fixed
	}
	return text
}

func repairOnce(text string, opts Options) string {
	if opts.DecodeEscapes {
		if decoded, ok := DecodeEscapes(text); ok {
			text = decoded
		}
	}
	if opts.UnescapeHTML && strings.Contains(text, "&") && !strings.Contains(text, "<") {
		text = html.UnescapeString(text)
	}
	text = terminalEscape.ReplaceAllString(text, "")
	text = FixMojibake(text)
	text = fixC1Controls(text)
	text = ligatures.Replace(text)
	text = width.Fold.String(text)
	if opts.UncurlQuotes {
		text = curlyQuotes.Replace(text)
	}
	text = FixLineBreaks(text)
	text = removeControlChars(text)
	return opts.Form.String(text)
}

var terminalEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "ſt",
	"ﬆ", "st",
	"Ĳ", "IJ",
	"ĳ", "ij",
	"Ǉ", "LJ",
	"ǈ", "Lj",
	"ǉ", "lj",
	"Ǌ", "NJ",
	"ǋ", "Nj",
	"ǌ", "nj",
	"Ǳ", "DZ",
	"ǲ", "Dz",
	"ǳ", "dz",
)

var curlyQuotes = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‟", `"`,
)

var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
	"\u0085", "\n",
)

// FixLineBreaks converts every line separator convention to "\n".
func FixLineBreaks(text string) string {
	return lineBreaks.Replace(text)
}

// mojibakeEncodings are the single-byte encodings UTF-8 is most often
// misread as, in order of preference.
var mojibakeEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// FixMojibake re-decodes whitespace separated runs that are UTF-8 bytes
// misread as Windows-1252 or Latin-1, such as "vÅ¡etko" for "všetko".
// A run is rewritten only when its single-byte encoding is valid UTF-8
// that is shorter than the run.
func FixMojibake(text string) string {
	if isASCII(text) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	start := -1
	for i, r := range text {
		if isSpace(r) {
			if start >= 0 {
				sb.WriteString(fixRun(text[start:i]))
				start = -1
			}
			sb.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		sb.WriteString(fixRun(text[start:]))
	}
	return sb.String()
}

func fixRun(run string) string {
	if isASCII(run) {
		return run
	}
	for _, enc := range mojibakeEncodings {
		raw, err := enc.NewEncoder().Bytes([]byte(run))
		if err != nil || isASCII(string(raw)) || !utf8.Valid(raw) {
			continue
		}
		back, err := enc.NewDecoder().Bytes(raw)
		if err != nil || !bytes.Equal(back, []byte(run)) {
			continue
		}
		if utf8.RuneCount(raw) < utf8.RuneCountInString(run) {
			return string(raw)
		}
	}
	return run
}

// fixC1Controls reads stray C1 control characters as the Windows-1252
// characters they most likely were.
func fixC1Controls(text string) string {
	if !strings.ContainsFunc(text, isC1) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if !isC1(r) || r == '\u0085' {
			return r
		}
		if d := charmap.Windows1252.DecodeByte(byte(r)); d != utf8.RuneError && !isC1(d) {
			return d
		}
		return r
	}, text)
}

// removeControlChars drops control characters that have no place in text.
// Tab, line feed, vertical tab, form feed and carriage return are kept.
func removeControlChars(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\v', r == '\f', r == '\r':
			return r
		case r < 0x20, r == 0x7f:
			return -1
		case r >= 0x206a && r <= 0x206f:
			return -1
		case r == 0xfeff:
			return -1
		case r >= 0xfff9 && r <= 0xfffc:
			return -1
		}
		return r
	}, text)
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0xa0, 0x2028, 0x2029, 0x3000:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
