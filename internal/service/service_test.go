package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pdfactivity/internal/decoder"
	"pdfactivity/internal/domain"
	"pdfactivity/internal/parser"
)

type fakeDecoder struct {
	pages []domain.PageText
	err   error
}

func (d *fakeDecoder) ExtractPages(data []byte) ([]domain.PageText, error) {
	return d.pages, d.err
}

type fakeClassifier struct {
	labels []int
	err    error
	calls  int
}

func (c *fakeClassifier) Classify(_ context.Context, texts []string) ([]int, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if c.labels != nil {
		return c.labels, nil
	}
	return make([]int, len(texts)), nil
}

func newTestExtractor(dec domain.Decoder, status decoder.Status, cls domain.Classifier) *Extractor {
	return New(dec, status, parser.New(parser.Options{}), cls)
}

func TestProcessDocumentEmptyBytes(t *testing.T) {
	s := newTestExtractor(&fakeDecoder{}, decoder.Available(), nil)
	recs := s.ProcessDocument(nil, "x.pdf")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want one fallback", len(recs))
	}
	if recs[0].Error != "File is empty or could not be read" {
		t.Fatalf("error = %q", recs[0].Error)
	}
	if recs[0].ActivityIndex != 0 {
		t.Fatalf("index = %d", recs[0].ActivityIndex)
	}
}

func TestProcessDocumentDecoderUnavailable(t *testing.T) {
	s := newTestExtractor(&fakeDecoder{}, decoder.Unavailable("no pdf backend"), nil)
	recs := s.ProcessDocument([]byte("%PDF-"), "x.pdf")
	if len(recs) != 1 || recs[0].Error != "no pdf backend" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestProcessDocumentDecoderFailure(t *testing.T) {
	s := newTestExtractor(&fakeDecoder{err: errors.New("corrupt stream")}, decoder.Available(), nil)
	recs := s.ProcessDocument([]byte("junk"), "bad.pdf")
	if len(recs) != 1 || recs[0].Error != "corrupt stream" {
		t.Fatalf("records = %+v", recs)
	}
	if recs[0].FileName != "bad.pdf" || recs[0].DocumentName != "bad" {
		t.Fatalf("fallback names = %+v", recs[0])
	}
}

func TestProcessDocumentSuccess(t *testing.T) {
	dec := &fakeDecoder{pages: []domain.PageText{
		{PageNumber: 1, Text: "First sentence here. Second sentence here."},
	}}
	s := newTestExtractor(dec, decoder.Available(), nil)
	recs := s.ProcessDocument([]byte("%PDF-"), "doc.pdf")
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for i, r := range recs {
		if r.ActivityIndex != i {
			t.Errorf("record %d index = %d", i, r.ActivityIndex)
		}
	}
}

func TestClassifierFailureLabelsEverythingZero(t *testing.T) {
	cls := &fakeClassifier{err: errors.New("model exploded")}
	s := newTestExtractor(&fakeDecoder{}, decoder.Available(), cls)
	records := []domain.SentenceRecord{
		{ActivityText: "One.", ActivityIndex: 0},
		{ActivityText: "Two.", ActivityIndex: 1},
	}
	if err := s.ProcessBatch(context.Background(), records); err != nil {
		t.Fatalf("batch: %v", err)
	}
	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Label != 0 {
			t.Errorf("result %d label = %d, want 0 after classifier failure", i, r.Label)
		}
	}
}

func TestActivitiesAndSummary(t *testing.T) {
	cls := &fakeClassifier{labels: []int{1, 0, 1, 0}}
	s := newTestExtractor(&fakeDecoder{}, decoder.Available(), cls)
	records := []domain.SentenceRecord{
		{ActivityText: "A."}, {ActivityText: "B."}, {ActivityText: "C."}, {ActivityText: "D."},
	}
	if err := s.ProcessBatch(context.Background(), records); err != nil {
		t.Fatalf("batch: %v", err)
	}
	acts := s.Activities()
	if len(acts) != 2 || acts[0].Record.ActivityText != "A." || acts[1].Record.ActivityText != "C." {
		t.Fatalf("activities = %+v", acts)
	}
	sum := s.Summary()
	if sum.TotalSentences != 4 || sum.Activities != 2 || sum.ActivityPercentage != 50 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestProcessFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(good, []byte("%PDF-"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	dec := &fakeDecoder{pages: []domain.PageText{{PageNumber: 1, Text: "A whole sentence here."}}}
	s := newTestExtractor(dec, decoder.Available(), &fakeClassifier{})
	if err := s.ProcessFiles(context.Background(), []string{filepath.Join(dir, "*.pdf")}); err != nil {
		t.Fatalf("process: %v", err)
	}
	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per file", len(results))
	}
	var fallbacks, ok int
	for _, r := range results {
		if r.Record.Error == "File is empty or could not be read" {
			fallbacks++
		} else if r.Record.Error == "" {
			ok++
		}
	}
	if fallbacks != 1 || ok != 1 {
		t.Fatalf("fallbacks=%d ok=%d, results=%+v", fallbacks, ok, results)
	}
}

func TestProcessFilesNoMatches(t *testing.T) {
	s := newTestExtractor(&fakeDecoder{}, decoder.Available(), nil)
	if err := s.ProcessFiles(context.Background(), []string{filepath.Join(t.TempDir(), "*.pdf")}); err == nil {
		t.Fatal("expected error when no pdf matched")
	}
}

func TestRunIDStable(t *testing.T) {
	s := newTestExtractor(&fakeDecoder{}, decoder.Available(), nil)
	if s.RunID() == "" {
		t.Fatal("run id should be set")
	}
	if s.RunID() != s.RunID() {
		t.Fatal("run id should be stable per batch")
	}
}
