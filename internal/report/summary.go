// Package report computes classification summary statistics for display and
// export.
package report

import "pdfactivity/internal/domain"

// Summary aggregates classifier output over one batch.
type Summary struct {
	TotalSentences     int
	Activities         int
	NonActivities      int
	ActivityPercentage float64
}

// Summarize counts labels over the full labeled record set.
func Summarize(records []domain.LabeledRecord) Summary {
	s := Summary{TotalSentences: len(records)}
	for _, r := range records {
		if r.Label == 1 {
			s.Activities++
		}
	}
	s.NonActivities = s.TotalSentences - s.Activities
	if s.TotalSentences > 0 {
		s.ActivityPercentage = float64(s.Activities) / float64(s.TotalSentences) * 100
	}
	return s
}
