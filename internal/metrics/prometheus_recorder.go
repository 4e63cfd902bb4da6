package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

const namespace = "factpress"

// generationBuckets cover chat-completion latencies up to the request timeout.
var generationBuckets = []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                *prom.Registry
	generationDuration *prom.HistogramVec
	generations        *prom.CounterVec
	postsWritten       *prom.CounterVec
	runDuration        prom.Gauge
	runOutcome         *prom.CounterVec
	lastRun            prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// private registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		generationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of article completion requests",
			Buckets:   generationBuckets,
		}, []string{"lang", "result"}),
		generations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Article completion requests by language and result",
		}, []string{"lang", "result"}),
		postsWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_written_total",
			Help:      "Post pages written by language",
		}, []string{"lang"}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last generate run",
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generate runs by final status",
		}, []string{"outcome"}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last generate run finished",
		}),
	}
	reg.MustRegister(pr.generationDuration, pr.generations, pr.postsWritten, pr.runDuration, pr.runOutcome, pr.lastRun)
	return pr
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

func (p *PrometheusRecorder) ObserveGeneration(lang string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := resultLabel(success)
	p.generationDuration.WithLabelValues(lang, res).Observe(d.Seconds())
	p.generations.WithLabelValues(lang, res).Inc()
}

func (p *PrometheusRecorder) IncPostsWritten(lang string) {
	if p == nil {
		return
	}
	p.postsWritten.WithLabelValues(lang).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes every registered metric to path in the text exposition
// format read by the node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("failed to write metrics textfile").WithCause(err).
			WithContext("path", path).Warning().Build()
	}
	return nil
}
