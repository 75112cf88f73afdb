package inbox

import (
	"os"
	"path/filepath"
	"testing"

	"medreport/internal"
	"medreport/internal/storage"
)

type fakeConnector struct {
	messages []internal.FetchedReportMessage
}

func (f *fakeConnector) FetchInbox(label string, max int) ([]internal.FetchedReportMessage, error) {
	if len(f.messages) > max {
		return f.messages[:max], nil
	}
	return f.messages, nil
}

func TestFetchAndStore(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	raw := []byte("From: lab@example.com\r\nSubject: results\r\n\r\nglucose 85 mg/dL\r\n")
	conn := &fakeConnector{messages: []internal.FetchedReportMessage{
		{Provider: "imap", MessageID: "<m1@lab>", Subject: "results", From: "lab@example.com", ReceivedAt: "2026-08-01T10:00:00Z", Raw: raw},
	}}

	rawDir := filepath.Join(dir, "raw")
	svc := NewFetchService(db, rawDir, conn)

	res, err := svc.FetchAndStore("INBOX", 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Fetched != 1 || res.Stored != 1 {
		t.Fatalf("res: %+v", res)
	}

	row, err := db.GetReportByProviderMessageID("imap", "<m1@lab>")
	if err != nil {
		t.Fatal(err)
	}
	if row == nil || row.Status != "fetched" {
		t.Fatalf("row: %+v", row)
	}
	data, err := os.ReadFile(row.RawRef)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(raw) {
		t.Fatal("stored raw differs")
	}

	// Same message again must not duplicate.
	if _, err := svc.FetchAndStore("INBOX", 10); err != nil {
		t.Fatal(err)
	}
	rows, err := db.ListReportsByStatus("fetched", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d", len(rows))
	}
}
