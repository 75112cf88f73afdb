package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"medreport/internal"
)

// ExportResultToXLSX writes one row per normalized record plus a trailing
// summary row. Only ok results carry rows; non-ok results produce a file
// with the status and reason so operators can see why a report was skipped.
func ExportResultToXLSX(res internal.PipelineResult, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"test", "value", "unit", "status", "ref_low", "ref_high"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, test := range res.Tests {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, test.Name)
		set(2, test.Value)
		set(3, test.Unit)
		set(4, string(test.Status))
		set(5, test.RefRange.Low)
		set(6, test.RefRange.High)
	}

	footer := len(res.Tests) + 3
	setFooter := func(row int, label, value string) {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, labelCell, label)
		_ = f.SetCellValue(sheet, valueCell, value)
	}
	setFooter(footer, "status", string(res.Status))
	if res.Summary != "" {
		setFooter(footer+1, "summary", res.Summary)
	}
	if res.Reason != "" {
		setFooter(footer+1, "reason", res.Reason)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
