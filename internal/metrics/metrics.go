// Package metrics provides the Prometheus metrics registry for the scoring engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nogg_truth"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of matches evaluated",
	})
	DecisionRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decision_runs_total",
		Help:      "Total number of batch decision runs",
	})
	MatchesClassifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_classified_total",
		Help:      "Total number of classified matches by status",
	}, []string{"status"})
	OutcomesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outcomes_recorded_total",
		Help:      "Total number of recorded match outcomes by result",
	}, []string{"result"})
	StoreErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of pattern store failures by operation",
	}, []string{"operation"})
	HistoryClearsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_clears_total",
		Help:      "Total number of pattern history clears",
	})
)

// Gauge metrics
var (
	PatternsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "patterns_tracked",
		Help:      "Number of fingerprints in the pattern store",
	})
	ConfirmedPatterns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "confirmed_patterns",
		Help:      "Number of fingerprints confirmed by their outcome history",
	})
	PatternWinRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pattern_win_rate",
		Help:      "Win rate across all recorded outcomes",
	})
)

// Histogram metrics
var (
	ConfidenceScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confidence_score",
		Help:      "Confidence (quality-discounted edge) of evaluated matches",
		Buckets:   []float64{-0.1, -0.05, 0, 0.02, 0.04, 0.06, 0.08, 0.1, 0.15, 0.2},
	})
	DataQualityScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "data_quality_score",
		Help:      "Data quality of evaluated matches",
		Buckets:   []float64{0, 0.25, 0.4, 0.5, 0.7, 0.85, 1.0},
	})
	DecisionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "decision_duration_seconds",
		Help:      "Duration of batch decision runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(DecisionRunsTotal)
		registry.MustRegister(MatchesClassifiedTotal)
		registry.MustRegister(OutcomesRecordedTotal)
		registry.MustRegister(StoreErrorsTotal)
		registry.MustRegister(HistoryClearsTotal)

		registry.MustRegister(PatternsTracked)
		registry.MustRegister(ConfirmedPatterns)
		registry.MustRegister(PatternWinRate)

		registry.MustRegister(ConfidenceScore)
		registry.MustRegister(DataQualityScore)
		registry.MustRegister(DecisionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a single match evaluation.
func RecordEvaluation(confidence, quality float64) {
	EvaluationsTotal.Inc()
	ConfidenceScore.Observe(confidence)
	DataQualityScore.Observe(quality)
}

// RecordDecisionRun records a batch decision run.
func RecordDecisionRun(durationSeconds float64) {
	DecisionRunsTotal.Inc()
	DecisionDuration.Observe(durationSeconds)
}

// RecordClassification records one classified match.
func RecordClassification(status string) {
	MatchesClassifiedTotal.WithLabelValues(status).Inc()
}

// RecordOutcome records a stored match outcome.
func RecordOutcome(result string) {
	OutcomesRecordedTotal.WithLabelValues(result).Inc()
}

// RecordStoreError records a pattern store failure.
func RecordStoreError(operation string) {
	StoreErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordHistoryClear records a pattern history clear.
func RecordHistoryClear() {
	HistoryClearsTotal.Inc()
}

// UpdatePatternStats updates the pattern store gauges.
func UpdatePatternStats(patterns, confirmed int, winRate float64) {
	PatternsTracked.Set(float64(patterns))
	ConfirmedPatterns.Set(float64(confirmed))
	PatternWinRate.Set(winRate)
}
