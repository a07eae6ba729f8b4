package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"pdfactivity/internal/domain"
)

const (
	// MaxRecordChars caps sentence text well under the Excel cell limit.
	MaxRecordChars = 32000
	// TruncationMark is appended to any text cut at MaxRecordChars.
	TruncationMark = "... [TRUNCATED]"

	// PageQualityWarning is attached to records whose source page or
	// sentence was flagged by the garbage detector.
	PageQualityWarning = "possible OCR issues on page"
)

var (
	controlCharsRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// CleanSentenceText strips ASCII control characters, collapses whitespace
// runs to single spaces and truncates oversized text with a marker suffix.
func CleanSentenceText(text string) string {
	out := controlCharsRe.ReplaceAllString(text, "")
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	runes := []rune(out)
	if len(runes) > MaxRecordChars {
		out = string(runes[:MaxRecordChars]) + TruncationMark
	}
	return out
}

// DocumentName derives the document name from a file name by removing the
// final extension only.
func DocumentName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// BuildRecords assembles the final record list for one document. Indices are
// assigned in emission order starting at 0. contexts may be nil for the
// context-free pipeline mode; when present it must be positionally aligned
// with entries.
func BuildRecords(entries []domain.SentenceEntry, contexts []string, fileName string) []domain.SentenceRecord {
	docName := DocumentName(fileName)
	records := make([]domain.SentenceRecord, 0, len(entries))
	for i, e := range entries {
		rec := domain.SentenceRecord{
			FileName:      fileName,
			ActivityIndex: len(records),
			ActivityText:  CleanSentenceText(e.Text),
			PageNumber:    e.PageNumber,
			DocumentName:  docName,
		}
		if contexts != nil {
			rec.Context = CleanSentenceText(contexts[i])
		}
		if e.HasQualityIssue {
			rec.Error = PageQualityWarning
		}
		records = append(records, rec)
	}
	return records
}

// FallbackRecord is the single synthetic record emitted when a document
// yields zero valid sentences or fails outright. It carries index 0 so the
// contiguity invariant holds for the one-record list.
func FallbackRecord(fileName, text, errMsg string) domain.SentenceRecord {
	return domain.SentenceRecord{
		FileName:      fileName,
		ActivityIndex: 0,
		ActivityText:  ensureTerminal(CleanSentenceText(text)),
		PageNumber:    1,
		DocumentName:  DocumentName(fileName),
		Error:         errMsg,
	}
}
