package parser

import (
	"strings"

	"pdfactivity/internal/domain"
)

// BuildContexts returns the 3-sentence window (previous + current + next) for
// each entry, joined by single spaces. Windowing is purely positional over
// the full cross-page order, so a context may span a page break; it therefore
// must run only after every page of the document has been split.
func BuildContexts(entries []domain.SentenceEntry) []string {
	contexts := make([]string, len(entries))
	for i := range entries {
		parts := make([]string, 0, 3)
		if i > 0 {
			parts = append(parts, entries[i-1].Text)
		}
		parts = append(parts, entries[i].Text)
		if i < len(entries)-1 {
			parts = append(parts, entries[i+1].Text)
		}
		contexts[i] = strings.Join(parts, " ")
	}
	return contexts
}
