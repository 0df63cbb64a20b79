package runner

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/jsphweid/pianobench/algo"
	"github.com/jsphweid/pianobench/compare"
	"github.com/jsphweid/pianobench/extract"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
	"github.com/jsphweid/pianobench/util"
)

var errNoTracks = errors.New("test case has no tracks")

func callSegment(ctx context.Context, a algo.SegmentationAlgorithm, path string, codes []int, durations []float64, sampleRate int, hopLength int) (gt model.GroundTruth, err error) {
	defer recovered(&err)
	return a.Segment(ctx, path, codes, durations, sampleRate, hopLength)
}

// segmentOne derives the ground truth for the first track, runs the
// algorithm and scores it.
func (r *Runner) segmentOne(ctx context.Context, a algo.SegmentationAlgorithm, tc model.TestCase, path string) (model.SegmentResult, error) {
	track, ok := tc.FirstTrack()
	if !ok {
		return model.SegmentResult{}, errNoTracks
	}

	codes, durations, _ := extract.ExtractTrack(track)
	if err := truth.Validate(durations, r.SampleRate, r.HopLength); err != nil {
		return model.SegmentResult{}, err
	}
	gt := truth.Build(durations, r.SampleRate, r.HopLength)

	actual, err := callSegment(ctx, a, path, codes, durations, r.SampleRate, r.HopLength)
	if err != nil {
		return model.SegmentResult{}, err
	}
	return compare.Segments(tc.Filename, gt, actual), nil
}

// RunSegmentationTests reports state accuracy and boundary recall for every
// test case. There is no pass threshold in this mode.
func (r *Runner) RunSegmentationTests(ctx context.Context, a algo.SegmentationAlgorithm) (model.SegmentSummary, error) {
	summary := model.SegmentSummary{RunId: r.RunId, Total: len(r.Cases)}
	run := r.Metrics.StartRun(ctx, "segment", r.RunId)
	ctx = run.Ctx

	r.printf("Run %s\n", r.RunId)
	r.printf("Starting execution of %d note separation tests...\n", summary.Total)

	var stateAccs, recalls []float64
	for _, tc := range r.Cases {
		if err := ctx.Err(); err != nil {
			run.Finish(summary.Total, len(summary.Results)-summary.Errored, summary.Errored)
			return summary, err
		}

		path := r.Assets.Path(tc.Filename)
		if err := r.ensure(ctx, tc, path); err != nil {
			run.RecordEnvironmentFailure(err)
			run.Finish(summary.Total, 0, summary.Errored)
			return summary, err
		}

		r.printf("Testing %s...\n", filepath.Base(path))
		res, err := r.segmentOne(ctx, a, tc, path)
		if err != nil {
			r.printf("  ERROR: Exception during test execution: %v\n", err)
			run.RecordTestError(tc.Filename, err)
			summary.Errored++
			summary.Results = append(summary.Results, model.SegmentResult{
				Filename: tc.Filename,
				Status:   model.StatusError,
				Error:    err.Error(),
			})
			continue
		}

		r.printf("  State Accuracy: %s\n", percent(res.StateAccuracy))
		r.printf("  Boundary Recall: %s (Found %d/%d)\n", percent(res.BoundaryRecall), res.Found, res.Expected)
		summary.Results = append(summary.Results, res)
		stateAccs = append(stateAccs, res.StateAccuracy)
		recalls = append(recalls, res.BoundaryRecall)
	}

	summary.MeanStateAccuracy = util.Mean(stateAccs)
	summary.MeanBoundaryRecall = util.Mean(recalls)

	r.printf("Note Separation Tests Completed.\n")
	run.Finish(summary.Total, summary.Total-summary.Errored, summary.Errored)
	return summary, nil
}
