package truth

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/pianobench/model"
)

var ErrInvalidParams = errors.New("invalid ground truth parameters")

// Frame converts elapsed seconds to a frame index.
func Frame(seconds float64, sampleRate int, hopLength int) int {
	return int(math.Floor(seconds * float64(sampleRate) / float64(hopLength)))
}

func Validate(durations []float64, sampleRate int, hopLength int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParams, sampleRate)
	}
	if hopLength <= 0 {
		return fmt.Errorf("%w: hop length %d", ErrInvalidParams, hopLength)
	}
	for i, d := range durations {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: duration %v at note %d", ErrInvalidParams, d, i)
		}
	}
	return nil
}

// Build lays the notes end to end and labels every frame with the index of
// the note sounding in it. Notes shorter than a frame get a boundary but no
// state frames, so consecutive boundaries may be equal.
func Build(durations []float64, sampleRate int, hopLength int) model.GroundTruth {
	if len(durations) == 0 {
		return model.GroundTruth{StateFrames: []int{}, BoundaryFrames: []int{}}
	}

	states := []int{}
	boundaries := make([]int, 0, len(durations)+1)

	var currentTime float64
	for i, dur := range durations {
		boundaries = append(boundaries, Frame(currentTime, sampleRate, hopLength))

		currentTime += dur
		endFrame := Frame(currentTime, sampleRate, hopLength)
		for len(states) < endFrame {
			states = append(states, i)
		}
	}

	boundaries = append(boundaries, len(states))
	return model.GroundTruth{StateFrames: states, BoundaryFrames: boundaries}
}

// ForTestCase builds ground truth from the first track only; the others are
// accompaniment.
func ForTestCase(tc model.TestCase, sampleRate int, hopLength int) model.GroundTruth {
	track, ok := tc.FirstTrack()
	if !ok {
		return Build(nil, sampleRate, hopLength)
	}
	durations := make([]float64, len(track))
	for i, note := range track {
		durations[i] = note.Duration
	}
	return Build(durations, sampleRate, hopLength)
}
