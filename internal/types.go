package internal

// Status classifies a test value against its reference range.
type Status string

const (
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
)

type RefRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// NormalizedTest is a fully validated test record. Name always equals a
// catalog canonical name and Unit the catalog unit for that name.
type NormalizedTest struct {
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Unit     string   `json:"unit"`
	Status   Status   `json:"status"`
	RefRange RefRange `json:"ref_range"`
}

type ResultStatus string

const (
	ResultOK          ResultStatus = "ok"
	ResultUnprocessed ResultStatus = "unprocessed"
	ResultError       ResultStatus = "error"
)

// PipelineResult is the only artifact a pipeline run produces. Tests and
// Summary are set iff Status is ok, Reason iff it is not.
type PipelineResult struct {
	Status  ResultStatus     `json:"status"`
	Tests   []NormalizedTest `json:"tests,omitempty"`
	Summary string           `json:"summary,omitempty"`
	Reason  string           `json:"reason,omitempty"`
}

type NormalizationResult struct {
	Tests      []NormalizedTest `json:"tests"`
	Confidence float64          `json:"normalization_confidence"`
}

type SummaryResult struct {
	Summary      string   `json:"summary"`
	Explanations []string `json:"explanations"`
}

// ReportRow tracks one fetched report e-mail through the intake flow.
// Normalized results themselves are never stored.
type ReportRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedReportMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
