package runner

import (
	"context"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/pianobench/algo"
	"github.com/jsphweid/pianobench/metrics"
	"github.com/jsphweid/pianobench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder keeps events in memory instead of sending them
type eventRecorder struct {
	*sentry.HTTPSyncTransport
	mu     sync.Mutex
	events []*sentry.Event
}

func (e *eventRecorder) SendEvent(event *sentry.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *eventRecorder) transactions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var res []string
	for _, event := range e.events {
		if event.Type == "transaction" {
			res = append(res, event.Transaction)
		}
	}
	return res
}

func recordSentry(t *testing.T) *eventRecorder {
	t.Helper()
	recorder := &eventRecorder{HTTPSyncTransport: sentry.NewHTTPSyncTransport()}
	require.NoError(t, sentry.Init(sentry.ClientOptions{
		Dsn:              "https://public@sentry.invalid/1",
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Transport:        recorder,
	}))
	t.Cleanup(func() {
		sentry.CurrentHub().BindClient(nil)
	})
	return recorder
}

func TestCancelledScoreRunFinishesTransaction(t *testing.T) {
	recorder := recordSentry(t)
	cases := []model.TestCase{testCase("fur_elise.wav", "fur_elise.wav", 1.0, 1.0)}
	r, _ := newTestRunner(t, cases, []string{"fur_elise.wav"}, "")
	r.Metrics = metrics.NewSentryMetrics(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.RunScoreTests(ctx, algo.ScoreFunc(func(ctx context.Context, ideal string, candidate string) (model.ScoreResult, error) {
		return model.ScoreResult{}, nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"evaluation.score"}, recorder.transactions())
}

func TestCancelledSegmentationRunFinishesTransaction(t *testing.T) {
	recorder := recordSentry(t)
	cases := []model.TestCase{testCase("fur_elise.wav", "fur_elise.wav", 1.0, 1.0)}
	r, _ := newTestRunner(t, cases, []string{"fur_elise.wav"}, "")
	r.Metrics = metrics.NewSentryMetrics(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.RunSegmentationTests(ctx, algo.Oracle{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"evaluation.segment"}, recorder.transactions())
}

func TestCompletedRunFinishesTransaction(t *testing.T) {
	recorder := recordSentry(t)
	cases := []model.TestCase{testCase("fur_elise.wav", "fur_elise.wav", 1.0, 1.0)}
	r, _ := newTestRunner(t, cases, []string{"fur_elise.wav"}, "")
	r.Metrics = metrics.NewSentryMetrics(true)

	_, err := r.RunSegmentationTests(context.Background(), algo.Oracle{})

	require.NoError(t, err)
	assert.Equal(t, []string{"evaluation.segment"}, recorder.transactions())
}
