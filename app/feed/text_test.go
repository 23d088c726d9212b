package feed

import (
	"strings"
	"testing"
)

func TestStripCDATA(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"wrapped text", "<![CDATA[Hello World]]>", "Hello World"},
		{"no wrapper", "Hello World", "Hello World"},
		{"wrapper inside text", "before <![CDATA[inner]]> after", "before inner after"},
		{"multiline content", "<![CDATA[line one\nline two]]>", "line one\nline two"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCDATA(tt.input); got != tt.expected {
				t.Errorf("StripCDATA(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"named entities", "Ben &amp; Jerry &lt;3", "Ben & Jerry <3"},
		{"quotes", "&quot;quoted&quot; and &#39;single&#39;", `"quoted" and 'single'`},
		{"numeric entity", "caf&#233;", "café"},
		{"hex entity", "it&#x27;s", "it's"},
		{"nothing to decode", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.input); got != tt.expected {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple markup", "<p>Hello <b>World</b></p>", "Hello World"},
		{"collapses whitespace", "too   many\n\n spaces", "too many spaces"},
		{"trims", "  padded  ", "padded"},
		{"non-breaking space", "a\u00a0b", "a b"},
		{"attributed tag", `<a href="https://example.com">link text</a>`, "link text"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.expected {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateWordSafety(t *testing.T) {
	got := Truncate("The quick brown fox jumps", 10)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
	if got != "The quick..." {
		t.Errorf("Expected cut at word boundary, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"within budget", "short", 10, "short"},
		{"exactly at budget", "exactly10!", 10, "exactly10!"},
		{"empty input", "", 10, ""},
		{"single long word", "abcdefghijklmnop", 5, "abcde..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	input := "<![CDATA[<p>Acme &amp; Partners   announce</p>]]>"
	expected := "Acme & Partners announce"

	if got := CleanText(input); got != expected {
		t.Errorf("CleanText(%q) = %q, want %q", input, got, expected)
	}
}
