package metrics

import "time"

// OutcomeLabel enumerates final run states.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines the observability hooks of a generate run.
type Recorder interface {
	ObserveGeneration(lang string, d time.Duration, success bool)
	IncPostsWritten(lang string)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGeneration(string, time.Duration, bool) {}
func (NoopRecorder) IncPostsWritten(string)                        {}
func (NoopRecorder) ObserveRunDuration(time.Duration)              {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                    {}
