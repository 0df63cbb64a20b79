package metrics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the Sentry client. An empty DSN leaves reporting off.
func Init(dsn string, release string) bool {
	if dsn == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Printf("Warning: could not initialize Sentry: %v", err)
		return false
	}
	return true
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

// SentryMetrics reports evaluation runs and their failures
type SentryMetrics struct {
	enabled bool
}

func NewSentryMetrics(enabled bool) *SentryMetrics {
	return &SentryMetrics{enabled: enabled}
}

// Run wraps one evaluation run in a transaction
type Run struct {
	metrics     *SentryMetrics
	transaction *sentry.Span
	Ctx         context.Context
}

func (m *SentryMetrics) StartRun(ctx context.Context, mode string, runId string) *Run {
	if m == nil || !m.enabled {
		return &Run{metrics: m, Ctx: ctx}
	}

	transaction := sentry.StartTransaction(ctx, "evaluation."+mode)
	transaction.SetTag("mode", mode)
	transaction.SetTag("run_id", runId)
	return &Run{metrics: m, transaction: transaction, Ctx: transaction.Context()}
}

// RecordTestError captures an algorithm failure for one test case.
func (r *Run) RecordTestError(filename string, err error) {
	if r.transaction == nil {
		return
	}

	span := sentry.StartSpan(r.Ctx, "evaluation.test_case")
	defer span.Finish()
	span.SetTag("filename", filename)
	span.Status = sentry.SpanStatusInternalError
	span.Description = fmt.Sprintf("Algorithm error: %s", filename)

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("filename", filename)
		sentry.CaptureException(err)
	})
}

// RecordEnvironmentFailure captures the error that aborted the run.
func (r *Run) RecordEnvironmentFailure(err error) {
	if r.transaction == nil {
		return
	}
	r.transaction.SetTag("success", "false")
	r.transaction.Status = sentry.SpanStatusFailedPrecondition
	sentry.CaptureException(err)
}

func (r *Run) Finish(total int, passed int, errored int) {
	if r.transaction == nil {
		return
	}
	r.transaction.SetData("total", total)
	r.transaction.SetData("passed", passed)
	r.transaction.SetData("errored", errored)
	if r.transaction.Status == sentry.SpanStatusUndefined {
		r.transaction.Status = sentry.SpanStatusOK
	}
	r.transaction.Finish()
}
