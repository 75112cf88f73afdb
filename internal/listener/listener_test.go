package listener

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"medreport/internal"
	"medreport/internal/catalog"
	"medreport/internal/config"
	"medreport/internal/pipeline"
	"medreport/internal/storage"
)

func seedReport(t *testing.T, db *storage.DB, dir, messageID, body string) internal.ReportRow {
	t.Helper()
	raw := "From: lab@example.com\r\nSubject: results\r\n\r\n" + body + "\r\n"
	path := filepath.Join(dir, messageID+".eml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	row, err := db.UpsertReport("imap", messageID, "results", "lab@example.com", "2026-08-01T10:00:00Z", messageID, path, "fetched")
	if err != nil {
		t.Fatal(err)
	}
	return row
}

func TestProcessPending(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cfg := config.Config{
		OutputDir:          filepath.Join(dir, "out"),
		RawReportDir:       dir,
		MatchScoreCutoff:   75,
		SummaryPointLimit:  3,
		ListenerAutoExport: true,
	}
	proc := pipeline.NewProcessor(cfg, catalog.Builtin())
	svc := NewService(db, cfg, proc)

	good := seedReport(t, db, dir, "m-good", "Hemoglobin: 10.2 g/dL (Low)")
	bad := seedReport(t, db, dir, "m-bad", "nothing to see")

	processed, err := svc.ProcessPending(10)
	if err != nil {
		t.Fatal(err)
	}
	if processed != 1 {
		t.Fatalf("processed=%d", processed)
	}

	row, err := db.GetReportByID(good.ID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != "processed" {
		t.Fatalf("good status: %q", row.Status)
	}
	row, err = db.GetReportByID(bad.ID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != "unprocessed" {
		t.Fatalf("bad status: %q", row.Status)
	}

	base := fmt.Sprintf("%d_m-good", good.ID)
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "listener", base+".json"))
	if err != nil {
		t.Fatal(err)
	}
	var result internal.PipelineResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Status != internal.ResultOK || len(result.Tests) != 1 {
		t.Fatalf("artifact: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "listener", base+".xlsx")); err != nil {
		t.Fatal(err)
	}
}
