package fetch

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every element. bluemonday also drops the inner text of
// script and style blocks, which is exactly what page analysis needs.
var stripPolicy = bluemonday.StrictPolicy()

// ExtractText reduces raw HTML to whitespace-collapsed readable text,
// truncated to budget characters so downstream prompts stay bounded. A
// budget of zero or less means no truncation.
func ExtractText(rawHTML string, budget int) string {
	text := stripPolicy.Sanitize(rawHTML)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	return Truncate(text, budget)
}

// Truncate cuts s to at most budget characters without splitting a rune.
func Truncate(s string, budget int) string {
	if budget <= 0 || len(s) <= budget {
		return s
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
