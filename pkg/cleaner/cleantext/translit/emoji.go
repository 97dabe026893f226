package translit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// IsEmoji reports whether the grapheme cluster is an emoji, including
// skin-tone, ZWJ and flag sequences the emoji table does not list.
func IsEmoji(cluster string) bool {
	if cluster == "" || isASCII(cluster) {
		return false
	}
	if _, err := gomoji.GetInfo(cluster); err == nil {
		return true
	}
	return isEmojiSequence(cluster)
}

// Alias returns the textual name of an emoji cluster, ":slug:" for known
// emoji and ":u<hex>-<hex>:" built from the code points otherwise.
func Alias(cluster string) string {
	if info, err := gomoji.GetInfo(cluster); err == nil && info.Slug != "" {
		return ":" + info.Slug + ":"
	}
	var sb strings.Builder
	sb.WriteString(":u")
	i := 0
	for _, r := range cluster {
		if i > 0 {
			sb.WriteByte('-')
		}
		fmt.Fprintf(&sb, "%x", r)
		i++
	}
	sb.WriteByte(':')
	return sb.String()
}

const emojiPrefix = "zqxemoji"

// EncodeEmoji replaces every emoji cluster with an ASCII token built from
// its alias, ":<prefix><slug>:", where prefix is chosen to be absent from
// text. The returned replacer turns exactly those tokens back into the
// clusters they stood for, so alias text already in the input survives.
// It is nil when text holds no emoji.
func EncodeEmoji(text string) (string, *strings.Replacer) {
	if isASCII(text) {
		return text, nil
	}
	prefix := emojiPrefix
	for strings.Contains(text, prefix) {
		prefix += "z"
	}

	var sb strings.Builder
	sb.Grow(len(text))
	seen := map[string]string{}
	used := map[string]bool{}
	var pairs []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if !IsEmoji(cluster) {
			sb.WriteString(cluster)
			continue
		}
		token, ok := seen[cluster]
		if !ok {
			name := prefix + strings.Trim(Alias(cluster), ":")
			token = ":" + name + ":"
			// clusters sharing a slug, e.g. with and without U+FE0F
			for n := 2; used[token]; n++ {
				token = fmt.Sprintf(":%s-%d:", name, n)
			}
			used[token] = true
			seen[cluster] = token
			pairs = append(pairs, token, cluster)
		}
		sb.WriteString(token)
	}
	if len(pairs) == 0 {
		return text, nil
	}
	return sb.String(), strings.NewReplacer(pairs...)
}

// RemoveEmoji drops every emoji cluster and leaves all other text,
// surrounding whitespace included, as it was.
func RemoveEmoji(text string) string {
	if isASCII(text) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if cluster := gr.Str(); !IsEmoji(cluster) {
			sb.WriteString(cluster)
		}
	}
	return sb.String()
}

// isEmojiSequence accepts clusters made of pictographs and the emoji
// components that modify them.
func isEmojiSequence(cluster string) bool {
	pictograph := false
	for _, r := range cluster {
		switch {
		case isEmojiComponent(r):
		case isPictograph(r):
			pictograph = true
		default:
			return false
		}
	}
	return pictograph
}

func isPictograph(r rune) bool {
	switch {
	case r >= 0x1f000 && r <= 0x1faff:
		return true
	case r >= 0x2600 && r <= 0x27bf:
		return true
	case r >= 0x2b00 && r <= 0x2bff:
		return true
	}
	return false
}

func isEmojiComponent(r rune) bool {
	switch {
	case r == 0x200d, r == 0xfe0e, r == 0xfe0f, r == 0x20e3:
		return true
	case r >= 0xe0020 && r <= 0xe007f:
		return true
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
