package model

type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"

	// segmentation runs have no threshold
	StatusScored Status = "SCORED"
)

// ScoreResult is what a score algorithm reports for one candidate.
type ScoreResult struct {
	PitchAccuracy float64 `json:"pitch_accuracy"`
	TempoAccuracy float64 `json:"tempo_accuracy"`
}

type ScoreOutcome struct {
	Filename  string      `json:"filename"`
	Expected  ScoreResult `json:"expected"`
	Actual    ScoreResult `json:"actual"`
	PitchPass bool        `json:"pitch_pass"`
	TempoPass bool        `json:"tempo_pass"`
	Status    Status      `json:"status"`
	Error     string      `json:"error,omitempty"`
}

type ScoreSummary struct {
	RunId    string         `json:"run_id"`
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Errored  int            `json:"errored"`
	Outcomes []ScoreOutcome `json:"outcomes"`
}

type SegmentResult struct {
	Filename       string  `json:"filename"`
	StateAccuracy  float64 `json:"state_accuracy"`
	BoundaryRecall float64 `json:"boundary_recall"`
	Found          int     `json:"found"`
	Expected       int     `json:"expected"`
	Status         Status  `json:"status"`
	Error          string  `json:"error,omitempty"`
}

type SegmentSummary struct {
	RunId              string          `json:"run_id"`
	Total              int             `json:"total"`
	Errored            int             `json:"errored"`
	MeanStateAccuracy  float64         `json:"mean_state_accuracy"`
	MeanBoundaryRecall float64         `json:"mean_boundary_recall"`
	Results            []SegmentResult `json:"results"`
}
