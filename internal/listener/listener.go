// Package listener runs the periodic intake loop: fetch report e-mails,
// run them through the pipeline and write summary artifacts.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"medreport/internal"
	"medreport/internal/config"
	"medreport/internal/inbox"
	gmailconnector "medreport/internal/inbox/gmail"
	imapconnector "medreport/internal/inbox/imap"
	"medreport/internal/ingest"
	"medreport/internal/pipeline"
	"medreport/internal/storage"
)

type Service struct {
	db   *storage.DB
	cfg  config.Config
	proc *pipeline.Processor
}

func NewService(db *storage.DB, cfg config.Config, proc *pipeline.Processor) *Service {
	return &Service{db: db, cfg: cfg, proc: proc}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			slog.Error("listener cycle failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	traceID := uuid.NewString()
	provider := strings.ToLower(strings.TrimSpace(s.cfg.ListenerProvider))

	connector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := inbox.NewFetchService(s.db, s.cfg.RawReportDir, connector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.ListenerLabel, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	processed, err := s.ProcessPending(s.cfg.ListenerProcessBatch)
	if err != nil {
		return err
	}

	slog.Info("listener cycle done",
		"traceId", traceID, "provider", provider,
		"fetched", fetchResult.Fetched, "stored", fetchResult.Stored, "processed", processed)
	return nil
}

// ProcessPending runs the pipeline over up to batch fetched reports. Each
// report ends in status processed, unprocessed or error; a summary artifact
// is written for every run so skipped reports remain inspectable.
func (s *Service) ProcessPending(batch int) (int, error) {
	rows, err := s.db.ListReportsByStatus("fetched", batch)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, row := range rows {
		result := s.processReport(row)
		if err := s.writeArtifacts(row, result); err != nil {
			slog.Error("artifact write failed", "reportId", row.ID, "err", err)
		}

		status := "processed"
		switch result.Status {
		case internal.ResultUnprocessed:
			status = "unprocessed"
		case internal.ResultError:
			status = "error"
		}
		if err := s.db.UpdateReportStatus(row.ID, status); err != nil {
			return processed, err
		}
		if result.Status == internal.ResultOK {
			processed++
		}
		slog.Info("report done", "reportId", row.ID, "subject", row.Subject, "status", status)
	}

	return processed, nil
}

func (s *Service) processReport(row internal.ReportRow) internal.PipelineResult {
	raw, err := os.ReadFile(row.RawRef)
	if err != nil {
		return internal.PipelineResult{Status: internal.ResultError, Reason: err.Error()}
	}
	doc, err := ingest.FromEmailRaw(raw)
	if err != nil {
		return internal.PipelineResult{Status: internal.ResultError, Reason: err.Error()}
	}
	return s.proc.NormalizeAndSummarize(doc.Text)
}

func (s *Service) writeArtifacts(row internal.ReportRow, result internal.PipelineResult) error {
	dir := filepath.Join(s.cfg.OutputDir, "listener")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := fmt.Sprintf("%d_%s", row.ID, sanitizeMessageID(row.MessageID))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, base+".json"), data, 0o644); err != nil {
		return err
	}

	if s.cfg.ListenerAutoExport && result.Status == internal.ResultOK {
		return pipeline.ExportResultToXLSX(result, filepath.Join(dir, base+".xlsx"))
	}
	return nil
}

func (s *Service) makeConnector(provider string) (inbox.Connector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}

func sanitizeMessageID(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
