// Package parser turns raw per-page PDF text into an ordered, indexed
// sequence of sentence records with page attribution, context windows and
// OCR-quality flags.
package parser

import (
	"fmt"
	"strings"

	"pdfactivity/internal/domain"
	"pdfactivity/internal/textnorm"
)

// QualityPolicy decides what happens to sentences the garbage detector
// flags.
type QualityPolicy string

const (
	// QualityFlag annotates flagged records and keeps them (default).
	QualityFlag QualityPolicy = "flag"
	// QualityDiscard drops individually flagged sentences outright.
	// Page-level flags still only annotate: the page signal is too coarse
	// to justify dropping every sentence on the page.
	QualityDiscard QualityPolicy = "discard"
)

// Options configures one Parser. The zero value yields the lenient defaults:
// 5-character minimum, flag-not-discard, context windows on.
type Options struct {
	MinSentenceChars int
	OnQualityIssue   QualityPolicy
	WithoutContext   bool
	Observer         domain.PageObserver
}

// Parser is the per-document extraction pipeline. It is stateless across
// calls; one instance may process any number of documents sequentially.
type Parser struct {
	opts     Options
	splitter *Splitter
}

// New builds a Parser, applying defaults for unset options.
func New(opts Options) *Parser {
	if opts.MinSentenceChars < 1 {
		opts.MinSentenceChars = DefaultMinSentenceChars
	}
	if opts.OnQualityIssue == "" {
		opts.OnQualityIssue = QualityFlag
	}
	return &Parser{opts: opts, splitter: NewSplitter(opts.MinSentenceChars)}
}

// ParseDocument runs the full pipeline over one document's pages and returns
// its record list. It never returns an error and never returns an empty
// slice: zero surviving sentences or an internal fault produce exactly one
// fallback record.
func (p *Parser) ParseDocument(pages []domain.PageText, fileName string) (records []domain.SentenceRecord) {
	defer func() {
		if r := recover(); r != nil {
			records = []domain.SentenceRecord{
				FallbackRecord(fileName, "Failed to parse: "+fileName, fmt.Sprintf("parsing error: %v", r)),
			}
		}
	}()

	var entries []domain.SentenceEntry
	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			p.observe(page.PageNumber, 0)
			continue
		}
		normalized := textnorm.Normalize(page.Text)
		pageSuspect := IsPageGarbage(normalized)

		accepted := 0
		for _, sentence := range p.splitter.Extract(normalized) {
			sentenceSuspect := IsSentenceGarbage(sentence)
			if p.opts.OnQualityIssue == QualityDiscard && sentenceSuspect {
				continue
			}
			entries = append(entries, domain.SentenceEntry{
				Text:            sentence,
				PageNumber:      page.PageNumber,
				HasQualityIssue: pageSuspect || sentenceSuspect,
			})
			accepted++
		}
		p.observe(page.PageNumber, accepted)
	}

	if len(entries) == 0 {
		return []domain.SentenceRecord{
			FallbackRecord(fileName, "No extractable text found in "+fileName, "no extractable text"),
		}
	}

	var contexts []string
	if !p.opts.WithoutContext {
		contexts = BuildContexts(entries)
	}
	return BuildRecords(entries, contexts, fileName)
}

func (p *Parser) observe(pageNumber, sentenceCount int) {
	if p.opts.Observer != nil {
		p.opts.Observer.OnPageProcessed(pageNumber, sentenceCount)
	}
}
