// Package export renders classified sentence records into an Excel workbook
// matching the layout downstream consumers expect.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pdfactivity/internal/domain"
	"pdfactivity/internal/report"
)

const (
	activitiesSheet = "Activities_Only"
	summarySheet    = "Summary"
	maxColumnWidth  = 80
)

var activityColumns = []string{"text_sentence", "page_number", "document_name", "error"}

// Workbook builds the export file: an Activities_Only sheet holding only
// records classified as activities, and a Summary sheet with batch
// statistics. Returns the serialized .xlsx bytes.
func Workbook(records []domain.LabeledRecord, runID string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", activitiesSheet); err != nil {
		return nil, err
	}

	widths := make([]int, len(activityColumns))
	for i, h := range activityColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(activitiesSheet, cell, h); err != nil {
			return nil, err
		}
		widths[i] = len(h)
	}

	row := 2
	for _, r := range records {
		if r.Label != 1 {
			continue
		}
		values := []any{
			r.Record.ActivityText,
			r.Record.PageNumber,
			r.Record.DocumentName,
			r.Record.Error,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(activitiesSheet, cell, v); err != nil {
				return nil, err
			}
			if l := len(fmt.Sprint(v)); l > widths[col] {
				widths[col] = l
			}
		}
		row++
	}

	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		adjusted := w + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(activitiesSheet, name, name, float64(adjusted)); err != nil {
			return nil, err
		}
	}

	if err := writeSummary(f, records, runID); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, records []domain.LabeledRecord, runID string) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := report.Summarize(records)
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Sentences Processed", s.TotalSentences},
		{"Activities Found", s.Activities},
		{"Activity Percentage", fmt.Sprintf("%.1f%%", s.ActivityPercentage)},
		{"Run ID", runID},
	}
	for i, r := range rows {
		for col, v := range r {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
