// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the classification service.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "email-classifier"
	namespace   = "email_classifier"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	Classifications       *prometheus.CounterVec
	ClassificationLatency *prometheus.HistogramVec
	DegradedResults       prometheus.Counter

	TierFailures *prometheus.CounterVec
	TierSkipped  *prometheus.CounterVec
	TierReady    *prometheus.GaugeVec

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheSize   prometheus.Gauge

	DelegateLatency *prometheus.HistogramVec
	BreakerState    *prometheus.GaugeVec

	BatchSize prometheus.Histogram
}

// Provider bundles the tracer and the metrics. A nil *Provider is valid and
// records nothing, so components can take one optionally.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider registers the service metrics on a fresh registry together
// with the Go runtime and process collectors.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  newMetrics(promauto.With(reg)),
		registry: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func newMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classification results by producing tier and category",
		}, []string{"tier", "category"}),
		ClassificationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Time spent in the tier chain per message",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"tier"}),
		DegradedResults: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_results_total",
			Help:      "Results produced after at least one tier failed",
		}),
		TierFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tier_failures_total",
			Help:      "Tier executions that returned an error or panicked",
		}, []string{"tier"}),
		TierSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tier_skipped_total",
			Help:      "Calls that skipped a tier because it was not ready",
		}, []string{"tier"}),
		TierReady: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tier_ready",
			Help:      "1 when the tier finished initialization",
		}, []string{"tier"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Result cache hits",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Result cache misses",
		}),
		CacheSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries held by the result cache",
		}),
		DelegateLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delegate_request_duration_seconds",
			Help:      "Remote scoring delegate round trips",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),
		BreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "delegate_breaker_state",
			Help:      "Delegate circuit breaker state: 0 closed, 1 half-open, 2 open",
		}, []string{"breaker"}),
		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Messages per batch request",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		}),
	}
}

// RecordClassification counts a chain result.
func (p *Provider) RecordClassification(tier, category string, degraded bool, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.Classifications.WithLabelValues(tier, category).Inc()
	p.Metrics.ClassificationLatency.WithLabelValues(tier).Observe(duration.Seconds())
	if degraded {
		p.Metrics.DegradedResults.Inc()
	}
}

// RecordTierFailure counts a failed tier execution.
func (p *Provider) RecordTierFailure(tier string) {
	if p == nil {
		return
	}
	p.Metrics.TierFailures.WithLabelValues(tier).Inc()
}

// RecordTierSkipped counts a call that bypassed an unready tier.
func (p *Provider) RecordTierSkipped(tier string) {
	if p == nil {
		return
	}
	p.Metrics.TierSkipped.WithLabelValues(tier).Inc()
}

// SetTierReady publishes a tier's readiness.
func (p *Provider) SetTierReady(tier string, ready bool) {
	if p == nil {
		return
	}
	v := 0.0
	if ready {
		v = 1
	}
	p.Metrics.TierReady.WithLabelValues(tier).Set(v)
}

// RecordCacheLookup counts a cache hit or miss.
func (p *Provider) RecordCacheLookup(hit bool) {
	if p == nil {
		return
	}
	if hit {
		p.Metrics.CacheHits.Inc()
		return
	}
	p.Metrics.CacheMisses.Inc()
}

// SetCacheSize publishes the number of cached results.
func (p *Provider) SetCacheSize(n int64) {
	if p == nil {
		return
	}
	p.Metrics.CacheSize.Set(float64(n))
}

// RecordDelegateCall observes one delegate round trip.
func (p *Provider) RecordDelegateCall(duration time.Duration, err error) {
	if p == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.Metrics.DelegateLatency.WithLabelValues(outcome).Observe(duration.Seconds())
}

// SetBreakerState publishes a breaker state (0 closed, 1 half-open, 2 open).
func (p *Provider) SetBreakerState(name string, state int) {
	if p == nil {
		return
	}
	p.Metrics.BreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBatchSize observes the size of a batch request.
func (p *Provider) RecordBatchSize(size int) {
	if p == nil {
		return
	}
	p.Metrics.BatchSize.Observe(float64(size))
}

// StartSpan starts a span; a nil provider uses the global tracer.
// The caller ends the span.
//
//nolint:spancheck // caller ends the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(serviceName)
	if p != nil && p.Tracer != nil {
		tracer = p.Tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
