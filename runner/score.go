package runner

import (
	"context"
	"path/filepath"

	"github.com/jsphweid/pianobench/algo"
	"github.com/jsphweid/pianobench/compare"
	"github.com/jsphweid/pianobench/model"
)

func callScore(ctx context.Context, a algo.ScoreAlgorithm, idealPath string, candidatePath string) (res model.ScoreResult, err error) {
	defer recovered(&err)
	return a.Score(ctx, idealPath, candidatePath)
}

// RunScoreTests scores every test case's candidate against its ideal
// rendering. Algorithm errors are recorded per test; a missing asset stops
// the run and is returned as an *EnvironmentError along with the partial
// summary.
func (r *Runner) RunScoreTests(ctx context.Context, a algo.ScoreAlgorithm) (model.ScoreSummary, error) {
	summary := model.ScoreSummary{RunId: r.RunId, Total: len(r.Cases)}
	run := r.Metrics.StartRun(ctx, "score", r.RunId)
	ctx = run.Ctx

	r.printf("Run %s\n", r.RunId)
	r.printf("Starting execution of %d tests...\n", summary.Total)

	for _, tc := range r.Cases {
		if err := ctx.Err(); err != nil {
			run.Finish(summary.Total, summary.Passed, summary.Errored)
			return summary, err
		}

		candidatePath := r.Assets.Path(tc.Filename)
		idealPath := r.Assets.Path(tc.IdealFilename)
		if err := r.ensure(ctx, tc, candidatePath, idealPath); err != nil {
			run.RecordEnvironmentFailure(err)
			run.Finish(summary.Total, summary.Passed, summary.Errored)
			return summary, err
		}

		r.printf("Testing %s...\n", filepath.Base(candidatePath))
		actual, err := callScore(ctx, a, idealPath, candidatePath)
		if err != nil {
			r.printf("  ERROR: Exception during test execution: %v\n", err)
			run.RecordTestError(tc.Filename, err)
			summary.Errored++
			summary.Outcomes = append(summary.Outcomes, model.ScoreOutcome{
				Filename: tc.Filename,
				Expected: compare.Expected(tc),
				Status:   model.StatusError,
				Error:    err.Error(),
			})
			continue
		}

		outcome := compare.Scores(tc.Filename, compare.Expected(tc), actual)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == model.StatusPass {
			r.printf("  PASS\n")
			summary.Passed++
			continue
		}

		r.printf("  FAIL\n")
		summary.Failed++
		if !outcome.PitchPass {
			r.printf("    Pitch Accuracy: Expected %v, Got %v\n", outcome.Expected.PitchAccuracy, outcome.Actual.PitchAccuracy)
		}
		if !outcome.TempoPass {
			r.printf("    Tempo Accuracy: Expected %v, Got %v\n", outcome.Expected.TempoAccuracy, outcome.Actual.TempoAccuracy)
		}
	}

	r.printf("Test Suite Completed: %d/%d passed.", summary.Passed, summary.Total)
	r.printf(" (%d failed, %d errored)\n", summary.Failed, summary.Errored)
	run.Finish(summary.Total, summary.Passed, summary.Errored)
	return summary, nil
}
