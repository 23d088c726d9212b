package feed

import (
	"html"
	"regexp"
	"strings"
)

// Text normalization helpers shared by the parser and the adapters.
// All functions are total: they never fail and map empty input to
// empty output.

var (
	cdataRe      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	trailingRe   = regexp.MustCompile(`\s+\S*$`)
)

// StripCDATA removes CDATA wrapper syntax, retaining the inner text.
func StripCDATA(s string) string {
	return cdataRe.ReplaceAllString(s, "$1")
}

// DecodeEntities decodes named and numeric HTML entities.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// StripTags removes any markup, collapses whitespace runs to single
// spaces and trims the result.
func StripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanText applies the full normalization chain used for feed text
// fields: CDATA removal, entity decoding and tag stripping.
func CleanText(s string) string {
	return StripTags(DecodeEntities(StripCDATA(s)))
}

// Truncate cuts s to at most maxLen runes, backing off to the last
// whole-word boundary and appending an ellipsis marker. Strings within
// the budget are returned unchanged.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	cut = trailingRe.ReplaceAllString(cut, "")
	return cut + "..."
}
