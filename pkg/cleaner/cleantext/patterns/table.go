// Package patterns holds the static matchers used by the cleaning passes.
//
// Every expression is compiled once at package initialisation and is safe
// for concurrent use. Expressions are written for RE2, so look-behind and
// look-ahead assertions from the usual URL/email/phone recipes are expressed
// as Context checks on each match instead.
package patterns

import (
	"sort"
	"strings"
	"unicode"
)

// Category names a class of substrings a pass can replace.
type Category string

const (
	CategoryCode     Category = "code"
	CategoryURL      Category = "url"
	CategoryEmail    Category = "email"
	CategoryPhone    Category = "phone"
	CategoryIP       Category = "ip"
	CategoryFilePath Category = "file_path"
	CategoryNumber   Category = "number"
	CategoryDigit    Category = "digit"
	CategoryCurrency Category = "currency"
	CategoryPunct    Category = "punct"
)

// Entry is one row of the pattern table. Patterns run in order; each one
// sees the output of the previous.
type Entry struct {
	Category Category
	Patterns []*Pattern
	Default  string
}

// hostLabel is one DNS label, accepting the unicode range used by IDNs.
const hostLabel = `(?:[a-z\x{00a1}-\x{ffff}0-9]-?)*[a-z\x{00a1}-\x{ffff}0-9]+`

var (
	// URL requires a scheme or a www prefix; bare "localhost:8080" is left alone.
	URL = Compile(
		`(?i)(?:(?:https?|s?ftp)://|www\d{0,3}\.)` +
			`(?:\S+(?::\S*)?@)?` +
			`(?:(?:\d{1,3}\.){3}\d{1,3}|` + hostLabel + `(?:\.` + hostLabel + `)*(?:\.[a-z\x{00a1}-\x{ffff}]{2,})|localhost)` +
			`(?::\d{2,5})?` +
			`(?:/[^)\]}\s]*)?`,
		NotAfter(wordOr("/.")),
	)

	// Email also accepts the obfuscated "(at)", "<at>", "[at]" and "{at}" forms.
	Email = Compile(
		`(?i)(?:[\p{L}\p{N}_+\-]\.?)*[\p{L}\p{N}_+\-]` +
			`(?:@|[(<{\[]at[)>}\]])` +
			hostLabel + `(?:\.` + hostLabel + `)*(?:\.[a-z\x{00a1}-\x{ffff}]{2,})`,
		NotAfter(wordOr("@.)")),
	)

	// Phone covers international prefixes, area codes with "/" separators and
	// extensions. Leftmost-longest so the long form wins over a prefix of it.
	Phone = CompileLongest(
		`\+?\d{4,5}[ ./-]\d{6,9}|`+
			`(?:(?:\+?[01]|\+\d{2})[ .-]?)?(?:\(?\d{3,4}\)?/?[ .-]?)?\d{3}[ .-]?\d{4}(?:\s?(?:ext\.?|[#x-])\s?\d{2,6})?`,
		NotAfter(wordOr(").:/")),
		NotBefore(wordOr(":/")),
		notDottedQuad,
	)

	IPv4 = CompileLongest(
		`(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`,
		NotAfter(wordOr(".")),
		NotBefore(IsWordRune),
		notFollowedByOctet,
	)

	IPv6 = CompileLongest(
		`(?i)(?:[0-9a-f]{1,4}:){7}[0-9a-f]{1,4}|`+
			`(?:[0-9a-f]{1,4}:){1,7}:|`+
			`(?:[0-9a-f]{1,4}:){1,6}:[0-9a-f]{1,4}|`+
			`(?:[0-9a-f]{1,4}:){1,5}(?::[0-9a-f]{1,4}){1,2}|`+
			`(?:[0-9a-f]{1,4}:){1,4}(?::[0-9a-f]{1,4}){1,3}|`+
			`(?:[0-9a-f]{1,4}:){1,3}(?::[0-9a-f]{1,4}){1,4}|`+
			`(?:[0-9a-f]{1,4}:){1,2}(?::[0-9a-f]{1,4}){1,5}|`+
			`[0-9a-f]{1,4}:(?::[0-9a-f]{1,4}){1,6}|`+
			`:(?:(?::[0-9a-f]{1,4}){1,7}|:)`,
		NotAfter(wordOr(":")),
		NotBefore(wordOr(":")),
	)

	// RelativePath needs an explicit "./", "../" or "~/" anchor so that
	// "and/or" or "km/h" are not taken for paths.
	RelativePath = Compile(
		`(?:\.\.?|~)/(?:[\p{L}\p{N}_.~\-]+/)*[\p{L}\p{N}_.~\-]+/?`,
		NotAfter(wordOr("/.~")),
	)

	WindowsPath = Compile(
		`[A-Za-z]:\\(?:[^\\/:*?"<>|\s]+\\)*[^\\/:*?"<>|\s]*`,
		NotAfter(IsWordRune),
	)

	UnixPath = Compile(
		`/(?:[\p{L}\p{N}_.~\-]+/)*[\p{L}\p{N}_.~\-]+/?`,
		NotAfter(wordOr("/:.~\\")),
	)

	// FencedCode must run before InlineCode.
	FencedCode = Compile("(?s)```.*?```")
	InlineCode = Compile("`[^`\n]+`")

	// Number matches grouped thousands in both conventions, decimals and
	// signed integers.
	Number = Compile(
		`[+\x{2013}-]?(?:[1-9]\d{0,2}(?:,\d{3})+(?:\.\d*)?|[1-9]\d{0,2}(?:[ .]\d{3})+(?:,\d*)?|\d*?[.,]\d+|\d+)(?:\b|$)`,
		NotAfter(wordOr(",.")),
	)

	Digit = Compile(`\p{Nd}`)

	// Currency collapses a run of symbols into one token.
	Currency = Compile(`(?:zł|\p{Sc})+`)

	Punct = Compile(`\pP`)

	// LineBreak uses the boundaries of str.splitlines-style line splitting.
	LineBreak = Compile(`\r\n|[\n\v\f\r\x{1c}-\x{1e}\x{85}\x{2028}\x{2029}]`)

	// LineBreaks collapses one or more consecutive line breaks.
	LineBreaks = Compile(`(?:\r\n|[\n\v\f\r\x{1c}-\x{1e}\x{85}\x{2028}\x{2029}])+`)

	// ParagraphBreaks matches runs of two or more line breaks.
	ParagraphBreaks = Compile(`(?:\r\n|[\n\v\f\r\x{1c}-\x{1e}\x{85}\x{2028}\x{2029}]){2,}`)

	// HorizontalSpace is whitespace that does not break a line.
	HorizontalSpace = Compile(`[\t \x{a0}\x{1680}\x{2000}-\x{200a}\x{202f}\x{205f}\x{3000}]+`)

	// AnySpace is every whitespace rune, line breaks included.
	AnySpace = Compile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
)

func notDottedQuad(text string, start, end int) bool {
	return !IPv4.re.MatchString(text[start:end])
}

// notFollowedByOctet rejects "1.2.3.4" inside "1.2.3.4.5" while still
// accepting an address that ends a sentence.
func notFollowedByOctet(text string, _, end int) bool {
	if end+1 < len(text) && text[end] == '.' {
		return !unicode.IsDigit(rune(text[end+1]))
	}
	return true
}

// CurrencyCodes maps currency symbols to ISO 4217 codes.
var CurrencyCodes = map[string]string{
	"$":  "USD",
	"zł": "PLN",
	"£":  "GBP",
	"¥":  "JPY",
	"฿":  "THB",
	"₡":  "CRC",
	"₦":  "NGN",
	"₩":  "KRW",
	"₪":  "ILS",
	"₫":  "VND",
	"€":  "EUR",
	"₱":  "PHP",
	"₲":  "PYG",
	"₴":  "UAH",
	"₹":  "INR",
	"₽":  "RUB",
	"₺":  "TRY",
}

// CurrencyCodeReplacer substitutes every symbol in CurrencyCodes.
var CurrencyCodeReplacer = newCurrencyReplacer()

func newCurrencyReplacer() *strings.Replacer {
	symbols := make([]string, 0, len(CurrencyCodes))
	for s := range CurrencyCodes {
		symbols = append(symbols, s)
	}
	// longest first, then lexical, so the replacer is deterministic
	sort.Slice(symbols, func(i, j int) bool {
		if len(symbols[i]) != len(symbols[j]) {
			return len(symbols[i]) > len(symbols[j])
		}
		return symbols[i] < symbols[j]
	})
	pairs := make([]string, 0, 2*len(symbols))
	for _, s := range symbols {
		pairs = append(pairs, s, CurrencyCodes[s])
	}
	return strings.NewReplacer(pairs...)
}

// QuoteReplacer maps typographic quote variants to ASCII quotes.
var QuoteReplacer = strings.NewReplacer(
	// double
	"«", `"`, "‹", `"`, "»", `"`, "›", `"`, "„", `"`, "“", `"`, "‟", `"`, "”", `"`,
	"❝", `"`, "❞", `"`, "❮", `"`, "❯", `"`, "〝", `"`, "〞", `"`, "〟", `"`, "＂", `"`,
	// single
	"‘", "'", "‛", "'", "’", "'", "❛", "'", "❜", "'", "`", "'", "´", "'", "‚", "'",
)

var table = map[Category]Entry{
	CategoryCode:     {CategoryCode, []*Pattern{FencedCode, InlineCode}, "<CODE>"},
	CategoryURL:      {CategoryURL, []*Pattern{URL}, "<URL>"},
	CategoryEmail:    {CategoryEmail, []*Pattern{Email}, "<EMAIL>"},
	CategoryPhone:    {CategoryPhone, []*Pattern{Phone}, "<PHONE>"},
	CategoryIP:       {CategoryIP, []*Pattern{IPv6, IPv4}, "<IP>"},
	CategoryFilePath: {CategoryFilePath, []*Pattern{RelativePath, WindowsPath, UnixPath}, "<FILE_PATH>"},
	CategoryNumber:   {CategoryNumber, []*Pattern{Number}, "<NUMBER>"},
	CategoryDigit:    {CategoryDigit, []*Pattern{Digit}, "0"},
	CategoryCurrency: {CategoryCurrency, []*Pattern{Currency}, "<CUR>"},
	CategoryPunct:    {CategoryPunct, []*Pattern{Punct}, ""},
}

// Lookup returns the table entry for c.
func Lookup(c Category) (Entry, bool) {
	e, ok := table[c]
	return e, ok
}

// MustLookup is Lookup for categories known at compile time.
func MustLookup(c Category) Entry {
	e, ok := table[c]
	if !ok {
		panic("patterns: unknown category " + string(c))
	}
	return e
}

// Categories lists every category in the table, sorted by name.
func Categories() []Category {
	out := make([]Category, 0, len(table))
	for c := range table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Replace applies every pattern of the entry in order.
func (e Entry) Replace(text, repl string) string {
	for _, p := range e.Patterns {
		text = p.ReplaceAll(text, repl)
	}
	return text
}
