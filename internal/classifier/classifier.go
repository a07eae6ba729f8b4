// Package classifier prepares sentence records for the binary activity
// classifier and provides its process-local and remote backends.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"pdfactivity/internal/domain"
)

// BuildInput returns the trainer-compatible classifier input: the sentence
// alone, or the sentence tagged with its context window when the stripped
// context is longer than 3 characters.
func BuildInput(text, contextWindow string) string {
	if len(strings.TrimSpace(contextWindow)) > 3 {
		return fmt.Sprintf("%s [ACTIVITY CONTEXT: %s]", text, contextWindow)
	}
	return text
}

// Inputs builds one classifier input per record, in order.
func Inputs(records []domain.SentenceRecord) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = BuildInput(r.ActivityText, r.Context)
	}
	return texts
}

// None is the classifier used when no model is configured: every sentence is
// labeled 0, mirroring how a classifier failure is tolerated.
type None struct{}

// Classify returns a zero label per input.
func (None) Classify(_ context.Context, texts []string) ([]int, error) {
	return make([]int, len(texts)), nil
}
