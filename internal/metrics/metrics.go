package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "assessor"

// Metrics holds the analysis engine collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	runs              *prometheus.CounterVec
	riskScore         prometheus.Histogram
	evidence          *prometheus.CounterVec
	documents         *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	tokens            prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Analysis runs by outcome.",
		}, []string{"outcome"}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of aggregate risk scores.",
			Buckets:   []float64{10, 25, 40, 50, 60, 75, 90, 100},
		}),
		evidence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evidence_citations_total",
			Help:      "Evidence citations by validation verdict.",
		}, []string{"verdict"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Submitted documents by handling outcome.",
		}, []string{"outcome"}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of text generation calls.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		tokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_tokens_total",
			Help:      "Tokens consumed by text generation calls.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.riskScore, m.evidence, m.documents, m.generationSeconds, m.tokens)
	}
	return m
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(outcome string, score int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.riskScore.Observe(float64(score))
}

// ObserveEvidence records citation verdicts.
func (m *Metrics) ObserveEvidence(verdict string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.evidence.WithLabelValues(verdict).Add(float64(count))
}

// ObserveDocuments records documents by outcome.
func (m *Metrics) ObserveDocuments(outcome string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.documents.WithLabelValues(outcome).Add(float64(count))
}

// ObserveGeneration records one generation call.
func (m *Metrics) ObserveGeneration(elapsed time.Duration, totalTokens int) {
	if m == nil {
		return
	}
	m.generationSeconds.Observe(elapsed.Seconds())
	if totalTokens > 0 {
		m.tokens.Add(float64(totalTokens))
	}
}
