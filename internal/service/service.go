// Package service drives batches of PDF files through decoding, sentence
// extraction and classification, isolating each file's failures.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pdfactivity/internal/classifier"
	"pdfactivity/internal/decoder"
	"pdfactivity/internal/domain"
	"pdfactivity/internal/parser"
	"pdfactivity/internal/report"
)

// Extractor processes documents sequentially and keeps the batch's labeled
// records in memory for export and browsing. Documents are independent: one
// file failing degrades to its own fallback record and never aborts
// siblings.
type Extractor struct {
	decoder       domain.Decoder
	decoderStatus decoder.Status
	parser        *parser.Parser
	classifier    domain.Classifier
	runID         string
	results       []domain.LabeledRecord
}

// New assembles an Extractor. The decoder status is passed explicitly so the
// unavailable branch is reachable in tests.
func New(dec domain.Decoder, status decoder.Status, p *parser.Parser, cls domain.Classifier) *Extractor {
	if cls == nil {
		cls = classifier.None{}
	}
	return &Extractor{
		decoder:       dec,
		decoderStatus: status,
		parser:        p,
		classifier:    cls,
		runID:         uuid.NewString(),
	}
}

// RunID identifies this batch in exports and logs.
func (s *Extractor) RunID() string { return s.runID }

// ProcessFiles expands globs, reads each .pdf and processes it. Unreadable
// files degrade to fallback records. Returns an error only when no input
// matched at all.
func (s *Extractor) ProcessFiles(ctx context.Context, paths []string) error {
	var files []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if strings.HasSuffix(strings.ToLower(m), ".pdf") {
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .pdf documents found")
	}

	var all []domain.SentenceRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(f)
		data, err := os.ReadFile(f)
		if err != nil {
			all = append(all, parser.FallbackRecord(name, "Failed to read: "+name, err.Error()))
			continue
		}
		all = append(all, s.ProcessDocument(data, name)...)
	}

	return s.classify(ctx, all)
}

// ProcessDocument runs one document through decode + parse and returns its
// records. Every failure mode yields a single well-formed fallback record.
func (s *Extractor) ProcessDocument(data []byte, fileName string) []domain.SentenceRecord {
	if !s.decoderStatus.Available {
		reason := s.decoderStatus.Reason
		if reason == "" {
			reason = "PDF decoder unavailable"
		}
		return []domain.SentenceRecord{
			parser.FallbackRecord(fileName, "PDF processing unavailable for "+fileName, reason),
		}
	}
	if len(data) == 0 {
		return []domain.SentenceRecord{
			parser.FallbackRecord(fileName, "Empty file: "+fileName, "File is empty or could not be read"),
		}
	}
	pages, err := s.decoder.ExtractPages(data)
	if err != nil {
		return []domain.SentenceRecord{
			parser.FallbackRecord(fileName, "Failed to parse: "+fileName, err.Error()),
		}
	}
	return s.parser.ParseDocument(pages, fileName)
}

// ProcessBatch classifies already-extracted records, for callers that decode
// out of band.
func (s *Extractor) ProcessBatch(ctx context.Context, records []domain.SentenceRecord) error {
	return s.classify(ctx, records)
}

// classify labels the batch in one call. A classifier failure is tolerated
// by labeling every sentence 0, so extraction results are never lost.
func (s *Extractor) classify(ctx context.Context, records []domain.SentenceRecord) error {
	labels, err := s.classifier.Classify(ctx, classifier.Inputs(records))
	if err != nil || len(labels) != len(records) {
		labels = make([]int, len(records))
	}
	s.results = make([]domain.LabeledRecord, len(records))
	for i, r := range records {
		s.results[i] = domain.LabeledRecord{Record: r, Label: labels[i]}
	}
	return nil
}

// Results returns every labeled record of the batch in emission order.
func (s *Extractor) Results() []domain.LabeledRecord { return s.results }

// Activities returns only the records classified as activities.
func (s *Extractor) Activities() []domain.LabeledRecord {
	var out []domain.LabeledRecord
	for _, r := range s.results {
		if r.Label == 1 {
			out = append(out, r)
		}
	}
	return out
}

// Summary returns the batch classification statistics.
func (s *Extractor) Summary() report.Summary { return report.Summarize(s.results) }
