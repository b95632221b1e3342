package graph

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects execution metrics for production
// monitoring. All metrics are namespaced "imageflow_".
//
// Metrics exposed:
//
//  1. runs_total (counter): completed workflow runs. Labels: status
//     (success/error/cycle).
//  2. node_latency_ms (histogram): node execution duration. Labels:
//     kind, status. Buckets 1ms–10s, sized for local transforms at the
//     low end and generation round-trips at the high end.
//  3. cache_events_total (counter): generative cache lookups. Labels:
//     kind, result (hit/miss).
//  4. generation_calls_total (counter): external provider round-trips.
//     Labels: kind.
//
// Expose via HTTP for scraping:
//
//	registry := prometheus.NewRegistry()
//	metrics := NewPrometheusMetrics(registry)
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
type PrometheusMetrics struct {
	runs        *prometheus.CounterVec
	nodeLatency *prometheus.HistogramVec
	cacheEvents *prometheus.CounterVec
	generations *prometheus.CounterVec

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers the workflow metrics with
// the given registry. A nil registry uses the global default.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	pm := &PrometheusMetrics{enabled: true}

	pm.runs = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imageflow",
		Name:      "runs_total",
		Help:      "Completed workflow runs by outcome",
	}, []string{"status"})

	pm.nodeLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "imageflow",
		Name:      "node_latency_ms",
		Help:      "Node execution duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"kind", "status"})

	pm.cacheEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imageflow",
		Name:      "cache_events_total",
		Help:      "Generative result cache lookups by outcome",
	}, []string{"kind", "result"})

	pm.generations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imageflow",
		Name:      "generation_calls_total",
		Help:      "External generation provider round-trips",
	}, []string{"kind"})

	return pm
}

// RecordRun counts one completed run with its outcome.
func (pm *PrometheusMetrics) RecordRun(status string) {
	if !pm.recording() {
		return
	}
	pm.runs.WithLabelValues(status).Inc()
}

// RecordNodeLatency observes one node execution duration.
func (pm *PrometheusMetrics) RecordNodeLatency(kind string, latency time.Duration, status string) {
	if !pm.recording() {
		return
	}
	pm.nodeLatency.WithLabelValues(kind, status).Observe(float64(latency.Milliseconds()))
}

// RecordCacheEvent counts one cache lookup, result "hit" or "miss".
func (pm *PrometheusMetrics) RecordCacheEvent(kind, result string) {
	if !pm.recording() {
		return
	}
	pm.cacheEvents.WithLabelValues(kind, result).Inc()
}

// RecordGeneration counts one provider round-trip.
func (pm *PrometheusMetrics) RecordGeneration(kind string) {
	if !pm.recording() {
		return
	}
	pm.generations.WithLabelValues(kind).Inc()
}

func (pm *PrometheusMetrics) recording() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable.
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}
