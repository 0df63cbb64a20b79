package model

type CaseOverview struct {
	Index         int    `json:"index"`
	Filename      string `json:"filename"`
	IdealFilename string `json:"ideal_filename"`
	NumTracks     int    `json:"tracks"`
	NumNotes      int    `json:"notes"`
}

type TruthResponse struct {
	Filename   string    `json:"filename"`
	SampleRate int       `json:"sample_rate"`
	HopLength  int       `json:"hop_length"`
	PitchCodes []int     `json:"pitch_codes"`
	Durations  []float64 `json:"durations"`
	GroundTruth
}

type ScoreRequestBody struct {
	Filename string `json:"filename"`
	ScoreResult
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
