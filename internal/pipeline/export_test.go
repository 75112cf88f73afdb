package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"medreport/internal"
)

func TestExportResultToXLSX(t *testing.T) {
	res := internal.PipelineResult{
		Status: internal.ResultOK,
		Tests: []internal.NormalizedTest{
			{Name: "hemoglobin", Value: 10.2, Unit: "g/dL", Status: internal.StatusLow, RefRange: internal.RefRange{Low: 12, High: 15}},
			{Name: "wbc", Value: 11200, Unit: "/uL", Status: internal.StatusHigh, RefRange: internal.RefRange{Low: 4000, High: 11000}},
		},
		Summary: "Your report shows low hemoglobin and high wbc.",
	}

	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	if err := ExportResultToXLSX(res, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 5 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "test" || rows[1][0] != "hemoglobin" || rows[2][0] != "wbc" {
		t.Fatalf("rows: %v", rows[:3])
	}
	if rows[1][3] != "low" || rows[2][3] != "high" {
		t.Fatalf("status cells: %v %v", rows[1], rows[2])
	}
}

func TestExportSkippedResult(t *testing.T) {
	res := internal.PipelineResult{
		Status: internal.ResultUnprocessed,
		Reason: ReasonNoCandidates,
	}
	path := filepath.Join(t.TempDir(), "skipped.xlsx")
	if err := ExportResultToXLSX(res, path); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "reason" && row[1] == ReasonNoCandidates {
			found = true
		}
	}
	if !found {
		t.Fatalf("reason row missing: %v", rows)
	}
}
