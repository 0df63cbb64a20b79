package algo

import (
	"context"

	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
)

// ScoreAlgorithm rates a candidate performance against the ideal rendering.
type ScoreAlgorithm interface {
	Score(ctx context.Context, idealPath string, candidatePath string) (model.ScoreResult, error)
}

// SegmentationAlgorithm splits a recording into note states given the
// first track's pitch codes and durations.
type SegmentationAlgorithm interface {
	Segment(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error)
}

type ScoreFunc func(ctx context.Context, idealPath string, candidatePath string) (model.ScoreResult, error)

func (f ScoreFunc) Score(ctx context.Context, idealPath string, candidatePath string) (model.ScoreResult, error) {
	return f(ctx, idealPath, candidatePath)
}

type SegmentFunc func(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error)

func (f SegmentFunc) Segment(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error) {
	return f(ctx, path, pitchCodes, durations, sampleRate, hopLength)
}

// Oracle answers with the ground truth itself. Useful to check the harness.
type Oracle struct{}

func (Oracle) Segment(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error) {
	if err := truth.Validate(durations, sampleRate, hopLength); err != nil {
		return model.GroundTruth{}, err
	}
	return truth.Build(durations, sampleRate, hopLength), nil
}
