package cleantext

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/patterns"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/translit"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/unicodefix"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/whitespace"
)

// The functions in this file are the individual passes of Clean. Each one
// is pure and may be used on its own.

// NormalizeWhitespace collapses whitespace. See whitespace.Options for
// the meaning of the flags.
func NormalizeWhitespace(text string, noLineBreaks, stripLines, keepTwoLineBreaks bool) string {
	return whitespace.Normalize(text, whitespace.Options{
		NoLineBreaks:      noLineBreaks,
		StripLines:        stripLines,
		KeepTwoLineBreaks: keepTwoLineBreaks,
	})
}

// ReplaceURLs replaces URLs with a scheme or a www prefix.
func ReplaceURLs(text, replaceWith string) string {
	return patterns.URL.ReplaceAll(text, replaceWith)
}

// ReplaceEmails replaces email addresses, obfuscated "(at)" forms included.
func ReplaceEmails(text, replaceWith string) string {
	return patterns.Email.ReplaceAll(text, replaceWith)
}

// ReplacePhoneNumbers replaces phone numbers.
func ReplacePhoneNumbers(text, replaceWith string) string {
	return patterns.Phone.ReplaceAll(text, replaceWith)
}

// ReplaceIPAddresses replaces IPv6 and IPv4 addresses.
func ReplaceIPAddresses(text, replaceWith string) string {
	return patterns.MustLookup(patterns.CategoryIP).Replace(text, replaceWith)
}

// ReplaceNumbers replaces whole numbers, decimals and grouped thousands.
func ReplaceNumbers(text, replaceWith string) string {
	return patterns.Number.ReplaceAll(text, replaceWith)
}

// ReplaceDigits replaces every decimal digit on its own, so "1970s"
// becomes "0000s" with "0".
func ReplaceDigits(text, replaceWith string) string {
	return patterns.Digit.ReplaceAll(text, replaceWith)
}

// ReplaceCurrencySymbols replaces each run of currency symbols with
// replaceWith. An empty replaceWith writes ISO 4217 codes instead.
func ReplaceCurrencySymbols(text, replaceWith string) string {
	if replaceWith == "" {
		return CurrencySymbolsToCodes(text)
	}
	return patterns.Currency.ReplaceAll(text, replaceWith)
}

// CurrencySymbolsToCodes writes "$" as "USD", "€" as "EUR" and so on.
// Symbols without a code are left alone.
func CurrencySymbolsToCodes(text string) string {
	return patterns.CurrencyCodeReplacer.Replace(text)
}

// RemovePunct deletes every unicode punctuation rune.
func RemovePunct(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, text)
}

// ReplacePunct replaces every punctuation rune with replaceWith. An empty
// replaceWith is RemovePunct.
func ReplacePunct(text, replaceWith string) string {
	if replaceWith == "" {
		return RemovePunct(text)
	}
	return patterns.Punct.ReplaceAll(text, replaceWith)
}

// RemovePunctMarks replaces each run of the given marks with one space and
// leaves all other punctuation in place.
func RemovePunctMarks(text, marks string) string {
	if marks == "" {
		return RemovePunct(text)
	}
	var sb strings.Builder
	sb.Grow(len(text))
	inRun := false
	for _, r := range text {
		if strings.ContainsRune(marks, r) {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// ReplaceCode replaces fenced ``` blocks and then inline `code` spans.
func ReplaceCode(text, replaceWith string) string {
	return patterns.MustLookup(patterns.CategoryCode).Replace(text, replaceWith)
}

// ReplaceFilePaths replaces relative, Windows and Unix paths.
func ReplaceFilePaths(text, replaceWith string) string {
	return patterns.MustLookup(patterns.CategoryFilePath).Replace(text, replaceWith)
}

// RemoveEmoji deletes emoji, including skin-tone, flag and ZWJ sequences.
func RemoveEmoji(text string) string {
	return translit.RemoveEmoji(text)
}

// ToASCIIUnicode transliterates text to ASCII, keeping the letters of the
// lang profile. Emoji are kept unless noEmoji is set.
func ToASCIIUnicode(text, lang string, noEmoji bool) (string, error) {
	l, err := translit.ParseLanguage(lang)
	if err != nil {
		return "", err
	}
	return translit.Transliterate(text, l, !noEmoji), nil
}

// FixBadUnicode repairs broken unicode and normalizes to form.
func FixBadUnicode(text string, form norm.Form) string {
	opts := unicodefix.DefaultOptions()
	opts.Form = form
	return unicodefix.Repair(text, opts)
}

// RemoveSubstrings replaces each of substrings, in order, with replaceWith.
func RemoveSubstrings(text string, substrings []string, replaceWith string) string {
	for _, s := range substrings {
		if s == "" {
			continue
		}
		text = strings.ReplaceAll(text, s, replaceWith)
	}
	return text
}
