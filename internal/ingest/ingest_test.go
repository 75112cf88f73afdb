package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFromHTMLTable(t *testing.T) {
	html := `<html><body><table>
<tr><th>Test</th><th>Value</th><th>Unit</th><th>Flag</th></tr>
<tr><td>Hemoglobin</td><td>10.2</td><td>g/dL</td><td>(Low)</td></tr>
<tr><td>WBC</td><td>11200</td><td>/uL</td><td>(High)</td></tr>
</table></body></html>`
	got, err := FromHTML([]byte(html))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%q", lines)
	}
	if lines[1] != "Hemoglobin 10.2 g/dL (Low)" {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestFromHTMLWithoutTables(t *testing.T) {
	got, err := FromHTML([]byte("<html><body><p>Glucose 85 mg/dL</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Glucose 85 mg/dL") {
		t.Fatalf("got %q", got)
	}
}

func TestFromXLSX(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Test", "Value", "Unit"},
		{"Glucose", 85, "mg/dL"},
		{"Sodium", 140, "mEq/L"},
	})
	got, err := FromXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%q", lines)
	}
	if lines[1] != "Glucose 85 mg/dL" {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestFromEmailRawInlineText(t *testing.T) {
	raw := []byte("From: lab@example.com\r\n" +
		"To: patient@example.com\r\n" +
		"Subject: Lab results\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Hemoglobin: 10.2 g/dL (Low)\r\n" +
		"WBC 11200 /uL (High)\r\n")
	doc, err := FromEmailRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Subject != "Lab results" {
		t.Fatalf("subject: %q", doc.Subject)
	}
	if !strings.Contains(doc.Text, "Hemoglobin: 10.2 g/dL (Low)") {
		t.Fatalf("text: %q", doc.Text)
	}
	if len(doc.Attachments) != 0 {
		t.Fatalf("attachments: %v", doc.Attachments)
	}
}

func TestFromInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("glucose 85 mg/dL"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FromInput("text", path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "glucose 85 mg/dL" {
		t.Fatalf("got %q", got)
	}
	if _, err := FromInput("docx", path); err == nil {
		t.Fatal("expected unsupported type error")
	}
}
