package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"medreport/internal"
	"medreport/internal/catalog"
	"medreport/internal/config"
	"medreport/internal/ocr"
)

// Terminal reason strings. Empty extraction and empty normalization are
// distinct failure causes and carry distinct reasons.
const (
	ReasonNoInput         = "no input provided (text or image result required)"
	ReasonNoTextExtracted = "no text extracted from image"
	ReasonNoCandidates    = "no test entries found in input text"
	ReasonNoneValidated   = "no candidate line passed validation"
)

// Processor drives extraction, normalization and summarization for one
// input. It holds no mutable state, so a single Processor is safe for
// concurrent use.
type Processor struct {
	cfg  config.Config
	cat  *catalog.Catalog
	norm *Normalizer
}

func NewProcessor(cfg config.Config, cat *catalog.Catalog) *Processor {
	return &Processor{cfg: cfg, cat: cat, norm: NewNormalizer(cfg, cat)}
}

func (p *Processor) Catalog() *catalog.Catalog {
	return p.cat
}

// NormalizeAndSummarize runs the pipeline over directly submitted text.
func (p *Processor) NormalizeAndSummarize(rawText string) internal.PipelineResult {
	return p.Process(rawText, nil)
}

// Process runs the pipeline over raw text or, when ocrResult is non-nil,
// over text produced by the external OCR collaborator. Faults inside any
// stage never escape; they come back as an error-status result.
func (p *Processor) Process(rawText string, ocrResult *ocr.Result) (out internal.PipelineResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline fault", "panic", r)
			out = internal.PipelineResult{Status: internal.ResultError, Reason: fmt.Sprint(r)}
		}
	}()

	text := rawText
	if ocrResult != nil {
		if strings.TrimSpace(ocrResult.Text) == "" {
			return internal.PipelineResult{Status: internal.ResultUnprocessed, Reason: ReasonNoTextExtracted}
		}
		text = ocrResult.Text
	} else if strings.TrimSpace(rawText) == "" {
		return internal.PipelineResult{Status: internal.ResultError, Reason: ReasonNoInput}
	}

	lines := ExtractCandidateLines(text)
	if len(lines) == 0 {
		return internal.PipelineResult{Status: internal.ResultUnprocessed, Reason: ReasonNoCandidates}
	}

	normalized := p.norm.Normalize(lines)
	if len(normalized.Tests) == 0 {
		return internal.PipelineResult{Status: internal.ResultUnprocessed, Reason: ReasonNoneValidated}
	}
	slog.Debug("normalization complete", "candidates", len(lines), "accepted", len(normalized.Tests), "confidence", normalized.Confidence)

	summary := Summarize(normalized.Tests, p.cat, p.cfg.SummaryPointLimit)

	return internal.PipelineResult{
		Status:  internal.ResultOK,
		Tests:   normalized.Tests,
		Summary: summary.Summary,
	}
}
