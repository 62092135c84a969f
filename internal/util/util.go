// internal/util/util.go
package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var markup = regexp.MustCompile(`<[^>]*>`)

// PlainLabel strips the HTML markup used in chart labels and titles. Line
// breaks become spaces and runs of whitespace collapse to one.
func PlainLabel(s string) string {
	s = strings.ReplaceAll(s, "<br>", " ")
	s = markup.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes-1]) + "…"
}

// FitRunes truncates or right-pads text to exactly width runes, for aligned
// terminal columns.
func FitRunes(text string, width int) string {
	text = TruncateRunes(text, width)
	if pad := width - utf8.RuneCountInString(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}
