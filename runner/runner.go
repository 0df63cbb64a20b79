package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jsphweid/pianobench/assets"
	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/metrics"
	"github.com/jsphweid/pianobench/model"
)

// EnvironmentError aborts a whole run: audio that cannot be found or
// produced means the setup is broken, not the test.
type EnvironmentError struct {
	Filename string
	Err      error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("environment failure at %s: %v", e.Filename, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Runner evaluates algorithms over a catalog, one test case at a time.
type Runner struct {
	Cases      []model.TestCase
	Assets     *assets.Resolver
	Metrics    *metrics.SentryMetrics
	Out        io.Writer
	SampleRate int
	HopLength  int
	RunId      string
}

func New(cases []model.TestCase, resolver *assets.Resolver) *Runner {
	return &Runner{
		Cases:      cases,
		Assets:     resolver,
		Out:        os.Stdout,
		SampleRate: constants.DefaultSampleRate,
		HopLength:  constants.DefaultHopLength,
		RunId:      uuid.New().String(),
	}
}

func (r *Runner) printf(format string, a ...any) {
	fmt.Fprintf(r.Out, format, a...)
}

// ensure runs the asset check and converts a failure into an
// EnvironmentError for the given test case.
func (r *Runner) ensure(ctx context.Context, tc model.TestCase, paths ...string) error {
	if err := r.Assets.Ensure(ctx, paths...); err != nil {
		r.printf("ERROR: %v\n", err)
		return &EnvironmentError{Filename: tc.Filename, Err: err}
	}
	return nil
}

// recovered turns a panic inside an algorithm into an error for that test
// case only.
func recovered(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
