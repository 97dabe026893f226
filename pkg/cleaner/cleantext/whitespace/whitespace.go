// Package whitespace collapses and trims whitespace in cleaned text.
package whitespace

import (
	"strings"

	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/patterns"
)

// Options controls how line breaks survive normalization.
type Options struct {
	// NoLineBreaks folds every line break into a single space.
	NoLineBreaks bool
	// StripLines trims each line before runs are collapsed.
	StripLines bool
	// KeepTwoLineBreaks keeps paragraph breaks as "\n\n".
	KeepTwoLineBreaks bool
}

// Normalize applies opts to text and trims the result. Lines are stripped
// before any collapsing, and NoLineBreaks overrides KeepTwoLineBreaks.
func Normalize(text string, opts Options) string {
	if opts.StripLines {
		text = stripLines(text)
	}
	switch {
	case opts.NoLineBreaks:
		text = patterns.AnySpace.ReplaceAll(text, " ")
	case opts.KeepTwoLineBreaks:
		text = patterns.HorizontalSpace.ReplaceAll(text, " ")
		text = patterns.LineBreak.ReplaceAll(text, "\n")
		text = trimAroundBreaks(text)
		text = patterns.ParagraphBreaks.ReplaceAll(text, "\n\n")
	default:
		text = patterns.HorizontalSpace.ReplaceAll(text, " ")
		text = patterns.LineBreaks.ReplaceAll(text, "\n")
	}
	return strings.TrimSpace(text)
}

// stripLines trims every line and joins them with "\n".
func stripLines(text string) string {
	locs := patterns.LineBreak.FindAllIndex(text)
	lines := make([]string, 0, len(locs)+1)
	last := 0
	for _, loc := range locs {
		lines = append(lines, strings.TrimSpace(text[last:loc[0]]))
		last = loc[1]
	}
	lines = append(lines, strings.TrimSpace(text[last:]))
	return strings.Join(lines, "\n")
}

// trimAroundBreaks drops the spaces around each "\n", so a blank line that
// only held spaces still counts as a paragraph break.
func trimAroundBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " ")
	}
	return strings.Join(lines, "\n")
}
