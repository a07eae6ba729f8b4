package domain

import "context"

// PageText is the raw text layer of a single PDF page as produced by the
// decoder. Text is empty for image-only pages.
type PageText struct {
	PageNumber int
	Text       string
}

// SentenceEntry is one accepted sentence in document order, before final
// record assembly. The ordered slice of these is what context windowing
// operates over.
type SentenceEntry struct {
	Text            string
	PageNumber      int
	HasQualityIssue bool
}

// SentenceRecord is the externally visible unit emitted per extracted
// sentence. Error is the empty string on success, a quality warning when the
// garbage detector flagged the source page or sentence, or a fatal per-file
// message on a fallback record.
type SentenceRecord struct {
	FileName      string
	ActivityIndex int
	ActivityText  string
	PageNumber    int
	DocumentName  string
	Context       string
	Error         string
}

// LabeledRecord pairs a record with its classifier output (0 or 1).
type LabeledRecord struct {
	Record SentenceRecord
	Label  int
}

// Decoder extracts per-page plain text from PDF bytes.
type Decoder interface {
	ExtractPages(data []byte) ([]PageText, error)
}

// Classifier assigns a binary activity label to each input text, in order.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]int, error)
}

// PageObserver receives synchronous progress callbacks from the parser.
// The parser never depends on this channel; it exists so a driver can show
// progress without the core printing anything.
type PageObserver interface {
	OnPageProcessed(pageNumber, sentenceCount int)
}
