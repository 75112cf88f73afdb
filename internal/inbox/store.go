package inbox

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"medreport/internal"
	"medreport/internal/storage"
)

// StoreService writes the raw .eml under a content hash and upserts the
// intake row. Re-fetching the same message is idempotent.
type StoreService struct {
	db           *storage.DB
	rawReportDir string
}

func NewStoreService(db *storage.DB, rawReportDir string) *StoreService {
	return &StoreService{db: db, rawReportDir: rawReportDir}
}

func (s *StoreService) Store(msg internal.FetchedReportMessage) (internal.ReportRow, error) {
	hashBytes := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.rawReportDir, 0o755); err != nil {
		return internal.ReportRow{}, err
	}

	rawPath := filepath.Join(s.rawReportDir, hash+".eml")
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, msg.Raw, 0o644); err != nil {
			return internal.ReportRow{}, err
		}
	}

	return s.db.UpsertReport(msg.Provider, msg.MessageID, msg.Subject, msg.From, msg.ReceivedAt, hash, rawPath, "fetched")
}
