package extract

import (
	"fmt"
	"math"

	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/model"
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchCode maps a frequency to the nearest equal-tempered semitone
// (A4 = 440 Hz = 69). Rests and non-positive frequencies map to RestCode.
func PitchCode(freq float64) int {
	if freq <= 0 || math.IsNaN(freq) {
		return constants.RestCode
	}
	semitone := constants.ReferenceSemitone + 12*math.Log2(freq/constants.ReferenceFreq)
	return int(math.Round(semitone))
}

// Frequency is the inverse of PitchCode for real pitches.
func Frequency(code int) float64 {
	if code == constants.RestCode {
		return 0
	}
	return constants.ReferenceFreq * math.Pow(2, float64(code-constants.ReferenceSemitone)/12)
}

func NoteName(code int) string {
	if code == constants.RestCode {
		return "Rest"
	}
	n := ((code % 12) + 12) % 12
	oct := code/12 - 1
	return fmt.Sprintf("%s%d", noteNames[n], oct)
}

func ExtractTrack(track model.Track) ([]int, []float64, []string) {
	codes := make([]int, 0, len(track))
	durations := make([]float64, 0, len(track))
	names := make([]string, 0, len(track))
	for _, note := range track {
		codes = append(codes, PitchCode(note.Frequency))
		durations = append(durations, note.Duration)
		names = append(names, note.Name)
	}
	return codes, durations, names
}

// NoteArrays splits every track of a test case into parallel code, duration
// and name slices.
func NoteArrays(tc model.TestCase) model.NoteArrays {
	res := model.NoteArrays{
		PitchCodes: make([][]int, 0, len(tc.Tracks)),
		Durations:  make([][]float64, 0, len(tc.Tracks)),
		Names:      make([][]string, 0, len(tc.Tracks)),
	}
	for _, track := range tc.Tracks {
		codes, durations, names := ExtractTrack(track)
		res.PitchCodes = append(res.PitchCodes, codes)
		res.Durations = append(res.Durations, durations)
		res.Names = append(res.Names, names)
	}
	return res
}
