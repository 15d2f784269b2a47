// Package metrics provides the centralized Prometheus metrics registry for the engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecast",
		Name:      "predictions_created_total",
		Help:      "Total number of predictions created",
	})
	PredictionsVerifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecast",
		Name:      "predictions_verified_total",
		Help:      "Total number of predictions verified against a final score",
	})
	PredictionsCorrectTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecast",
		Name:      "predictions_correct_total",
		Help:      "Total number of exact-score predictions that were correct",
	})
	ResultLookupFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecast",
		Name:      "result_lookup_failures_total",
		Help:      "Total number of failed result lookups",
	})
)

// Counter vector metrics
var (
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scorecast",
		Name:      "checks_total",
		Help:      "Total number of prediction checks by resolved match status",
	}, []string{"status"})
)

// Gauge metrics
var (
	PendingPredictions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "scorecast",
		Name:      "pending_predictions",
		Help:      "Number of predictions awaiting a final result",
	})
	AccuracyRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "scorecast",
		Name:      "accuracy_rate",
		Help:      "Exact-score accuracy over completed predictions, in percent",
	})
	ConfidenceCalibration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "scorecast",
		Name:      "confidence_calibration",
		Help:      "Confidence calibration score over completed predictions",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scorecast",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of prediction creation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	CheckBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scorecast",
		Name:      "check_batch_duration_seconds",
		Help:      "Duration of bulk pending checks in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsCreatedTotal)
		registry.MustRegister(PredictionsVerifiedTotal)
		registry.MustRegister(PredictionsCorrectTotal)
		registry.MustRegister(ResultLookupFailuresTotal)

		registry.MustRegister(ChecksTotal)

		registry.MustRegister(PendingPredictions)
		registry.MustRegister(AccuracyRate)
		registry.MustRegister(ConfidenceCalibration)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(CheckBatchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPredictionCreated records a prediction creation event.
func RecordPredictionCreated(durationSeconds float64) {
	PredictionsCreatedTotal.Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordCheck records a prediction check by resolved status.
func RecordCheck(status string) {
	ChecksTotal.WithLabelValues(status).Inc()
}

// RecordVerification records a completed verification event.
func RecordVerification(correct bool) {
	PredictionsVerifiedTotal.Inc()
	if correct {
		PredictionsCorrectTotal.Inc()
	}
}

// RecordLookupFailure records a failed result lookup.
func RecordLookupFailure() {
	ResultLookupFailuresTotal.Inc()
}

// UpdateAccuracy updates the accuracy and calibration gauges.
func UpdateAccuracy(accuracyRate, calibration float64) {
	AccuracyRate.Set(accuracyRate)
	ConfidenceCalibration.Set(calibration)
}

// UpdatePending updates the pending predictions gauge.
func UpdatePending(count float64) {
	PendingPredictions.Set(count)
}
