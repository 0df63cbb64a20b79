package compare

import (
	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/util"
)

func withinTolerance(actual float64, expected float64, tolerance float64) bool {
	return util.Abs(actual-expected) <= tolerance+constants.ScoreEpsilon
}

// Scores checks an algorithm's accuracies against the expected ones. Both
// must be within ScoreTolerance for the outcome to pass.
func Scores(filename string, expected model.ScoreResult, actual model.ScoreResult) model.ScoreOutcome {
	o := model.ScoreOutcome{
		Filename:  filename,
		Expected:  expected,
		Actual:    actual,
		PitchPass: withinTolerance(actual.PitchAccuracy, expected.PitchAccuracy, constants.ScoreTolerance),
		TempoPass: withinTolerance(actual.TempoAccuracy, expected.TempoAccuracy, constants.ScoreTolerance),
	}
	if o.PitchPass && o.TempoPass {
		o.Status = model.StatusPass
	} else {
		o.Status = model.StatusFail
	}
	return o
}

func Expected(tc model.TestCase) model.ScoreResult {
	return model.ScoreResult{
		PitchAccuracy: tc.ExpectedPitchAccuracy,
		TempoAccuracy: tc.ExpectedTempoAccuracy,
	}
}

// StateAccuracy counts label matches over the common prefix but divides by
// the ground truth length: a short prediction loses the missing tail, a long
// one is not charged for its excess.
func StateAccuracy(gt []int, actual []int) float64 {
	if len(gt) == 0 {
		if len(actual) == 0 {
			return 1.0
		}
		return 0.0
	}

	var matches int
	n := util.Min(len(gt), len(actual))
	for i := 0; i < n; i++ {
		if gt[i] == actual[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(gt))
}

// BoundaryRecall is the fraction of ground truth boundaries that have an
// actual boundary within tolerance frames. Unmatched actual boundaries are
// not penalized.
func BoundaryRecall(gt []int, actual []int, tolerance int) float64 {
	if len(gt) == 0 {
		if len(actual) == 0 {
			return 1.0
		}
		return 0.0
	}

	var matched int
	for _, g := range gt {
		for _, a := range actual {
			if util.Abs(g-a) <= tolerance {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(gt))
}

func Segments(filename string, gt model.GroundTruth, actual model.GroundTruth) model.SegmentResult {
	return model.SegmentResult{
		Filename:       filename,
		StateAccuracy:  StateAccuracy(gt.StateFrames, actual.StateFrames),
		BoundaryRecall: BoundaryRecall(gt.BoundaryFrames, actual.BoundaryFrames, constants.BoundaryTolerance),
		Found:          len(actual.BoundaryFrames),
		Expected:       len(gt.BoundaryFrames),
		Status:         model.StatusScored,
	}
}
