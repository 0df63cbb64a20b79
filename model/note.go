package model

import "encoding/json"

// Note is a single symbolic event. A Frequency of 0 is a rest.
type Note struct {
	Frequency float64 `json:"frequency"`
	Duration  float64 `json:"duration"`
	Name      string  `json:"name"`
}

type Track = []Note

type TestCase struct {
	Filename              string  `json:"filename"`
	IdealFilename         string  `json:"ideal_filename"`
	ExpectedPitchAccuracy float64 `json:"expected_pitch_accuracy"`
	ExpectedTempoAccuracy float64 `json:"expected_tempo_accuracy"`
	Tracks                []Track `json:"tracks"`
}

// UnmarshalJSON also accepts the generator's "notes" key for the track list.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	type plain TestCase
	aux := struct {
		*plain
		Notes []Track `json:"notes"`
	}{plain: (*plain)(tc)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if tc.Tracks == nil && aux.Notes != nil {
		tc.Tracks = aux.Notes
	}
	return nil
}

// FirstTrack returns the melody track, the only one used for ground truth.
func (tc TestCase) FirstTrack() (Track, bool) {
	if len(tc.Tracks) == 0 {
		return nil, false
	}
	return tc.Tracks[0], true
}

type NoteArrays struct {
	PitchCodes [][]int
	Durations  [][]float64
	Names      [][]string
}

// NOTE: only set when metadata lookups are enabled
type PieceMetadata struct {
	Title     string
	Composer  string
	Variation string
}
