package unicodefix

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeEscapes interprets backslash escape sequences the way a string
// literal would: \\ \' \" \a \b \f \n \r \t \v, octal \ooo, \xhh, \uXXXX and
// \UXXXXXXXX. UTF-16 surrogate pairs written as two \u escapes are joined.
// Unknown escapes are kept verbatim. It reports false, leaving text to the
// caller, when an escape is truncated, names a character (\N{...}), encodes
// a lone surrogate or lies outside the unicode range.
func DecodeEscapes(text string) (string, bool) {
	if !strings.Contains(text, `\`) {
		return text, true
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(text) {
			return text, false
		}
		n := text[i+1]
		switch n {
		case '\n':
			// line continuation
			i += 2
		case '\\', '\'', '"':
			sb.WriteByte(n)
			i += 2
		case 'a':
			sb.WriteByte('\a')
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'v':
			sb.WriteByte('\v')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(text) && j < i+4 && text[j] >= '0' && text[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(text[i+1:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j
		case 'x':
			r, ok := hexRune(text, i+2, 2)
			if !ok {
				return text, false
			}
			sb.WriteRune(r)
			i += 4
		case 'u', 'U':
			size := 4
			if n == 'U' {
				size = 8
			}
			r, ok := hexRune(text, i+2, size)
			if !ok || r > utf8.MaxRune {
				return text, false
			}
			i += 2 + size
			if utf16.IsSurrogate(r) {
				lo, ok := lowSurrogate(text, i)
				if r >= 0xdc00 || !ok {
					return text, false
				}
				r = utf16.DecodeRune(r, lo)
				i += 6
			}
			sb.WriteRune(r)
		case 'N':
			return text, false
		default:
			sb.WriteByte('\\')
			sb.WriteByte(n)
			i += 2
		}
	}
	return sb.String(), true
}

func hexRune(text string, at, size int) (rune, bool) {
	if at+size > len(text) {
		return 0, false
	}
	v, err := strconv.ParseUint(text[at:at+size], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// lowSurrogate reads a \uDC00-\uDFFF escape at text[at:].
func lowSurrogate(text string, at int) (rune, bool) {
	if at+6 > len(text) || text[at] != '\\' || text[at+1] != 'u' {
		return 0, false
	}
	r, ok := hexRune(text, at+2, 4)
	if !ok || r < 0xdc00 || r > 0xdfff {
		return 0, false
	}
	return r, true
}
