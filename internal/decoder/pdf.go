// Package decoder extracts per-page plain text from PDF byte streams.
package decoder

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"pdfactivity/internal/domain"
)

// Status says whether PDF decoding is usable in this process. It is an
// explicit value handed to the pipeline instead of a package-level flag, so
// the unavailable branch is testable without environment tricks.
type Status struct {
	Available bool
	Reason    string
}

// Available returns the status of a working decoder.
func Available() Status { return Status{Available: true} }

// Unavailable returns a status carrying the reason decoding cannot run.
func Unavailable(reason string) Status { return Status{Available: false, Reason: reason} }

// PDFDecoder reads the text layer of each page. Image-only or unreadable
// pages yield empty text rather than an error; only a document that cannot
// be opened at all fails.
type PDFDecoder struct{}

// New returns a PDFDecoder.
func New() *PDFDecoder { return &PDFDecoder{} }

// ExtractPages decodes the document and returns one PageText per page,
// 1-based, in order. The underlying reader panics on some malformed inputs;
// those are converted into errors here so a corrupt file degrades to a
// fallback record instead of killing the batch.
func (d *PDFDecoder) ExtractPages(data []byte) (pages []domain.PageText, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("corrupt pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]domain.PageText, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.PageText{PageNumber: i})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, domain.PageText{PageNumber: i})
			continue
		}
		pages = append(pages, domain.PageText{PageNumber: i, Text: text})
	}
	return pages, nil
}
