package main

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder receives build observations. noopRecorder is used unless the
// serve command wires a Prometheus registry.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	AddPostsBuilt(lang Language, n int)
	AddSkippedFiles(lang Language, n int)
	IncBuildOutcome(outcome string)
}

const (
	outcomeSuccess = "success"
	outcomeFailed  = "failed"
)

type noopRecorder struct{}

func (noopRecorder) ObserveBuildDuration(time.Duration) {}
func (noopRecorder) AddPostsBuilt(Language, int)        {}
func (noopRecorder) AddSkippedFiles(Language, int)      {}
func (noopRecorder) IncBuildOutcome(string)             {}

type prometheusRecorder struct {
	buildDuration prom.Histogram
	postsBuilt    *prom.CounterVec
	skippedFiles  *prom.CounterVec
	buildOutcome  *prom.CounterVec
}

func newPrometheusRecorder(reg prom.Registerer) *prometheusRecorder {
	pr := &prometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "blog",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		postsBuilt: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "posts_built_total",
			Help:      "Post pages written, by language",
		}, []string{"lang"}),
		skippedFiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "skipped_files_total",
			Help:      "Content files or artifacts skipped, by language",
		}, []string{"lang"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.buildDuration, pr.postsBuilt, pr.skippedFiles, pr.buildOutcome)
	return pr
}

func (p *prometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *prometheusRecorder) AddPostsBuilt(lang Language, n int) {
	p.postsBuilt.WithLabelValues(lang.String()).Add(float64(n))
}

func (p *prometheusRecorder) AddSkippedFiles(lang Language, n int) {
	p.skippedFiles.WithLabelValues(lang.String()).Add(float64(n))
}

func (p *prometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}
