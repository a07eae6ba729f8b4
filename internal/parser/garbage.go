package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Heuristic OCR-garbage detection. Both predicates are pure functions of a
// string and err toward keeping ambiguous text: the page-level check is
// conservative and only gates a quality flag, the sentence-level check is
// fine-grained enough to drop individual fragments in discard mode.

var (
	consonantRun10Re = regexp.MustCompile(`[bcdfghjklmnpqrstvwxyz]{10,}`)
	consonantRun8Re  = regexp.MustCompile(`[bcdfghjklmnpqrstvwxyz]{8,}`)
)

type charStats struct {
	total    int
	nonSpace int
	alpha    int
	vowels   int
}

func countChars(lower string) charStats {
	var st charStats
	for _, r := range lower {
		st.total++
		if !unicode.IsSpace(r) {
			st.nonSpace++
		}
		if unicode.IsLetter(r) {
			st.alpha++
		}
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			st.vowels++
		}
	}
	return st
}

// IsPageGarbage reports whether a whole page of text looks like corrupted OCR
// output. Pages under 50 characters are never flagged.
func IsPageGarbage(text string) bool {
	if utf8.RuneCountInString(text) < 50 {
		return false
	}
	lower := strings.ToLower(text)

	if len(consonantRun10Re.FindAllString(lower, -1)) > 1 {
		return true
	}

	st := countChars(lower)
	if st.nonSpace > 100 && float64(st.alpha)/float64(st.nonSpace) < 0.4 {
		return true
	}
	// Characters that are neither alphabetic nor whitespace.
	if st.total > 100 && float64(st.nonSpace-st.alpha)/float64(st.total) > 0.7 {
		return true
	}
	if st.alpha > 100 && float64(st.vowels)/float64(st.alpha) < 0.08 {
		return true
	}
	return false
}

// IsSentenceGarbage reports whether a single candidate sentence looks like
// corrupted OCR output.
func IsSentenceGarbage(sentence string) bool {
	if utf8.RuneCountInString(sentence) < 5 {
		return true
	}
	lower := strings.ToLower(sentence)
	st := countChars(lower)

	if st.nonSpace > 10 && float64(st.alpha)/float64(st.nonSpace) < 0.3 {
		return true
	}
	if consonantRun8Re.MatchString(lower) {
		return true
	}

	stripped := strings.ReplaceAll(lower, " ", "")
	if utf8.RuneCountInString(stripped) > 10 && distinctRunes(stripped) < 3 {
		return true
	}
	if st.alpha > 5 && st.vowels == 0 {
		return true
	}
	return false
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{}, 8)
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
