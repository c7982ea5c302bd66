package format

import (
	"regexp"
	"strings"
)

// entityTable is applied in order; "&amp;" precedes "&lt;" so "&amp;lt;" decodes to "<".
var entityTable = []struct {
	entity string
	char   string
}{
	{"&#8216;", "'"},
	{"&#8217;", "'"},
	{"&#8220;", `"`},
	{"&#8221;", `"`},
	{"&#8211;", "-"},
	{"&#8212;", "-"},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#039;", "'"},
	{"&apos;", "'"},
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// DefaultExcerptWords is the word limit used for card excerpts.
const DefaultExcerptWords = 30

// DecodeEntities replaces the HTML entities WordPress emits in titles and excerpts.
// Entities outside the table are left untouched.
func DecodeEntities(text string) string {
	for _, e := range entityTable {
		text = strings.ReplaceAll(text, e.entity, e.char)
	}
	return text
}

// StripHTML removes every tag from rendered HTML and decodes the remaining entities.
func StripHTML(html string) string {
	return DecodeEntities(tagPattern.ReplaceAllString(html, ""))
}

// TruncateWords keeps the first maxWords space-separated words and appends "..."
// when the text is longer.
func TruncateWords(text string, maxWords int) string {
	words := strings.Split(text, " ")
	if len(words) <= maxWords {
		return text
	}
	if maxWords < 0 {
		maxWords = 0
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// Excerpt turns rendered HTML into a plain-text teaser of DefaultExcerptWords words.
func Excerpt(html string) string {
	return TruncateWords(strings.TrimSpace(StripHTML(html)), DefaultExcerptWords)
}

// NullToEmpty returns s, or "" for a nil pointer.
func NullToEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
