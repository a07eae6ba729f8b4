package parser

import (
	"regexp"
	"strings"
)

// Placeholder tokens shield non-terminal periods from the splitter. They
// contain no sentence punctuation and no whitespace, so they pass through
// splitting untouched and are restored afterwards.
const (
	abbrevPeriod = "<<ABBR_PERIOD>>"
	numberPeriod = "<<NUM_PERIOD>>"
)

// abbreviations that end in a period without ending a sentence. Matched
// case-insensitively as whole words followed by ". ".
var abbreviations = []string{
	"Dr", "Mr", "Mrs", "Ms", "Prof", "Inc", "Ltd", "Corp", "Co", "LLC",
	"etc", "vs", "e.g", "i.e", "cf", "viz", "al", "Jr", "Sr",
	"Ph.D", "M.D", "B.A", "M.A", "M.S", "B.S", "U.S", "U.K", "U.N",
}

// Protector rewrites text so that abbreviation and numeric periods cannot be
// mistaken for sentence terminators. All substitutions are reversible via
// Restore.
type Protector struct {
	abbrevRe  *regexp.Regexp
	decimalRe *regexp.Regexp
	ordinalRe *regexp.Regexp
	timeRe    *regexp.Regexp
	versionRe *regexp.Regexp
	dateRe    *regexp.Regexp
}

// NewProtector compiles the protection patterns.
func NewProtector() *Protector {
	// Longest-first so "Mrs" wins over "Mr" and "Ph.D" over "M.D" prefixes.
	escaped := make([]string, len(abbreviations))
	for i, a := range abbreviations {
		escaped[i] = regexp.QuoteMeta(a)
	}
	for i := 0; i < len(escaped); i++ {
		for j := i + 1; j < len(escaped); j++ {
			if len(escaped[j]) > len(escaped[i]) {
				escaped[i], escaped[j] = escaped[j], escaped[i]
			}
		}
	}
	abbrevPattern := `(?i)\b(` + strings.Join(escaped, "|") + `)\. `

	// The numeric rules below accept either a raw period or an already
	// placed number placeholder: the decimal pass runs first and its
	// placeholder output is re-matched by the later rules, which protect
	// whatever period the plain-decimal pattern could not reach (the second
	// period of a date, for example).
	numOrDot := `(?:\.|` + numberPeriod + `)`

	return &Protector{
		abbrevRe:  regexp.MustCompile(abbrevPattern),
		decimalRe: regexp.MustCompile(`(\d+)\.(\d+)`),
		ordinalRe: regexp.MustCompile(`(?i)\b(\d+(?:st|nd|rd|th))\.`),
		timeRe:    regexp.MustCompile(`(?i)\b(\d{1,2})` + numOrDot + `(\d{2})(\s*(?:am|pm))\b`),
		versionRe: regexp.MustCompile(`(?i)\b(v\d+|version \d+)` + numOrDot + `(\d+)`),
		dateRe:    regexp.MustCompile(`\b(\d{1,2})` + numOrDot + `(\d{1,2})` + numOrDot + `(\d{4})\b`),
	}
}

// Protect applies the substitutions in their required order: abbreviations,
// plain decimals, ordinals, times of day, version numbers, dates. Decimal
// phrases followed by unit words (percent, million, km, ...) need no rule of
// their own: the plain-decimal pass already protects them.
func (p *Protector) Protect(text string) string {
	out := p.abbrevRe.ReplaceAllString(text, "${1}"+abbrevPeriod+" ")
	out = p.protectDecimals(out)
	out = p.ordinalRe.ReplaceAllString(out, "${1}"+numberPeriod)
	out = p.timeRe.ReplaceAllString(out, "${1}"+numberPeriod+"${2}${3}")
	out = p.versionRe.ReplaceAllString(out, "${1}"+numberPeriod+"${2}")
	out = p.dateRe.ReplaceAllString(out, "${1}"+numberPeriod+"${2}"+numberPeriod+"${3}")
	return out
}

// protectDecimals runs digits.digits protection to a fixed point. A single
// ReplaceAll pass consumes the trailing digits of each match, so chained
// groups like "1.2.2024" need a second pass to reach the remaining period.
func (p *Protector) protectDecimals(text string) string {
	for {
		next := p.decimalRe.ReplaceAllString(text, "${1}"+numberPeriod+"${2}")
		if next == text {
			return text
		}
		text = next
	}
}

// Restore converts every placeholder back into a literal period. Called once
// per fragment, after splitting.
func (p *Protector) Restore(text string) string {
	out := strings.ReplaceAll(text, abbrevPeriod, ".")
	return strings.ReplaceAll(out, numberPeriod, ".")
}
