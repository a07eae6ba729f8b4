// Package textnorm cleans raw page text before sentence extraction.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spacesTabsRe = regexp.MustCompile(`[ \t]+`)
	manyBlanksRe = regexp.MustCompile(`\n{4,}`)
)

// Normalize applies Unicode canonical composition, maps CRLF/CR line endings
// to LF, collapses runs of spaces and tabs to a single space, and bounds runs
// of 4+ newlines to exactly 3 so paragraph breaks survive without unbounded
// blank-line noise.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	out := norm.NFC.String(text)
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = spacesTabsRe.ReplaceAllString(out, " ")
	out = manyBlanksRe.ReplaceAllString(out, "\n\n\n")
	return out
}
