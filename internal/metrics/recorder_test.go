package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveGeneration("ar", time.Second, false)
		r.IncPostsWritten("ar")
		r.ObserveRunDuration(time.Minute)
		r.IncRunOutcome(OutcomeSuccess)
	})

	var _ Recorder = (*PrometheusRecorder)(nil)
}
