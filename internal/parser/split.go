package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinSentenceChars is the lenient minimum fragment length. The
// stricter summary mode historically used 10; both are reachable through
// Options.
const DefaultMinSentenceChars = 5

var (
	terminatorRe = regexp.MustCompile(`[.!?]+`)
	paragraphRe  = regexp.MustCompile(`\n{2,}`)
	newlineRe    = regexp.MustCompile(`\n`)
)

// Splitter turns normalized page text into an ordered list of sentence
// strings. Fragments shorter than minChars (in runes) are discarded and every
// surviving sentence is guaranteed to end in '.', '!' or '?'.
type Splitter struct {
	protector *Protector
	minChars  int
}

// NewSplitter builds a Splitter with the given minimum fragment length.
// Values below 1 fall back to DefaultMinSentenceChars.
func NewSplitter(minChars int) *Splitter {
	if minChars < 1 {
		minChars = DefaultMinSentenceChars
	}
	return &Splitter{protector: NewProtector(), minChars: minChars}
}

// Extract protects non-terminal periods, splits on sentence-ending
// punctuation, restores the protected periods and applies length and
// punctuation rules. A second pass re-splits surviving fragments on
// paragraph breaks and folds remaining newlines into spaces.
func (s *Splitter) Extract(text string) []string {
	protected := s.protector.Protect(text)

	var out []string
	for _, frag := range splitOnTerminators(protected) {
		sent := strings.TrimSpace(s.protector.Restore(frag))
		if utf8.RuneCountInString(sent) < s.minChars {
			continue
		}
		sent = ensureTerminal(sent)

		for _, part := range paragraphRe.Split(sent, -1) {
			part = strings.TrimSpace(newlineRe.ReplaceAllString(part, " "))
			if utf8.RuneCountInString(part) < s.minChars {
				continue
			}
			out = append(out, ensureTerminal(part))
		}
	}
	return out
}

// splitOnTerminators cuts text after each run of sentence punctuation that is
// followed by whitespace or the end of the text. The punctuation run stays
// with its fragment; the trailing whitespace stays with the next one. Done by
// scanning match positions since RE2 has no lookahead.
func splitOnTerminators(text string) []string {
	var parts []string
	last := 0
	for _, loc := range terminatorRe.FindAllStringIndex(text, -1) {
		if loc[1] < len(text) {
			r, _ := utf8.DecodeRuneInString(text[loc[1]:])
			if !unicode.IsSpace(r) {
				continue
			}
		}
		parts = append(parts, text[last:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		parts = append(parts, text[last:])
	}
	return parts
}

func ensureTerminal(sentence string) string {
	if strings.HasSuffix(sentence, ".") || strings.HasSuffix(sentence, "!") || strings.HasSuffix(sentence, "?") {
		return sentence
	}
	return sentence + "."
}
