package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"medreport/internal"
	"medreport/internal/catalog"
	"medreport/internal/config"
	"medreport/internal/ocr"
)

func testProcessor() *Processor {
	cfg := config.Config{MatchScoreCutoff: 75, SummaryPointLimit: 3}
	return NewProcessor(cfg, catalog.Builtin())
}

func TestProcessMixedStatuses(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("Hemoglobin: 10.2 g/dL (Low), WBC 11200 /uL (High)")
	if got.Status != internal.ResultOK {
		t.Fatalf("result: %+v", got)
	}
	if len(got.Tests) != 2 {
		t.Fatalf("tests: %+v", got.Tests)
	}
	if got.Tests[0].Name != "hemoglobin" || got.Tests[0].Status != internal.StatusLow {
		t.Fatalf("first test: %+v", got.Tests[0])
	}
	if got.Tests[1].Name != "wbc" || got.Tests[1].Status != internal.StatusHigh {
		t.Fatalf("second test: %+v", got.Tests[1])
	}
	if !strings.Contains(got.Summary, "hemoglobin") || !strings.Contains(got.Summary, "wbc") {
		t.Fatalf("summary: %q", got.Summary)
	}
	if got.Reason != "" {
		t.Fatalf("reason: %q", got.Reason)
	}
}

func TestProcessNoisyInput(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("BUN 8mg/dL(Low)\nPlatelets: 15000o /uL (Low)")
	if got.Status != internal.ResultOK || len(got.Tests) != 2 {
		t.Fatalf("result: %+v", got)
	}
	if got.Tests[0].Name != "bun" || got.Tests[0].Value != 8 || got.Tests[0].Status != internal.StatusLow {
		t.Fatalf("bun: %+v", got.Tests[0])
	}
	if got.Tests[1].Name != "platelets" || got.Tests[1].Value != 150000 {
		t.Fatalf("platelets: %+v", got.Tests[1])
	}
}

func TestProcessUnknownNamesOnly(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("fibrinogen: 300 mg/dL")
	if got.Status != internal.ResultUnprocessed {
		t.Fatalf("result: %+v", got)
	}
	if got.Reason != ReasonNoneValidated {
		t.Fatalf("reason: %q", got.Reason)
	}
	if len(got.Tests) != 0 || got.Summary != "" {
		t.Fatalf("non-ok result carries payload: %+v", got)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("")
	if got.Status != internal.ResultError || got.Reason != ReasonNoInput {
		t.Fatalf("result: %+v", got)
	}
}

func TestProcessNoCandidates(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("patient was advised to rest")
	if got.Status != internal.ResultUnprocessed || got.Reason != ReasonNoCandidates {
		t.Fatalf("result: %+v", got)
	}
}

func TestProcessAllNormal(t *testing.T) {
	got := testProcessor().NormalizeAndSummarize("glucose 85 mg/dL; sodium 140 mEq/L")
	if got.Status != internal.ResultOK || len(got.Tests) != 2 {
		t.Fatalf("result: %+v", got)
	}
	for _, test := range got.Tests {
		if test.Status != internal.StatusNormal {
			t.Fatalf("test: %+v", test)
		}
	}
	if got.Summary != "All test results appear to be within the normal range." {
		t.Fatalf("summary: %q", got.Summary)
	}
}

func TestProcessEmptyOCRText(t *testing.T) {
	got := testProcessor().Process("", &ocr.Result{Text: "   "})
	if got.Status != internal.ResultUnprocessed || got.Reason != ReasonNoTextExtracted {
		t.Fatalf("result: %+v", got)
	}
}

func TestProcessOCRText(t *testing.T) {
	got := testProcessor().Process("", &ocr.Result{Text: "hemoglobin 13.1 g/dL", Confidence: 0.9})
	if got.Status != internal.ResultOK || len(got.Tests) != 1 {
		t.Fatalf("result: %+v", got)
	}
}

func TestProcessRoundTripDerivedStatuses(t *testing.T) {
	cat := catalog.Builtin()
	p := testProcessor()
	for _, name := range cat.Names() {
		entry, _ := cat.Get(name)
		mid := (entry.RefLow + entry.RefHigh) / 2
		input := fmt.Sprintf("%s %v %s", name, mid, entry.Unit)
		got := p.NormalizeAndSummarize(input)
		if got.Status != internal.ResultOK || len(got.Tests) != 1 {
			t.Fatalf("%q: %+v", input, got)
		}
		if got.Tests[0].Status != internal.StatusNormal {
			t.Fatalf("%q: status=%q", input, got.Tests[0].Status)
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	input := "Hemoglobin: 10.2 g/dL (Low)\nWBC 11,200 /uL (High)\nGlucose 85 mg/dL"
	p := testProcessor()
	first, err := json.Marshal(p.NormalizeAndSummarize(input))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		next, err := json.Marshal(p.NormalizeAndSummarize(input))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, next)
		}
	}
}
