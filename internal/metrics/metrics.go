// Package metrics exposes Prometheus counters and histograms for vendor calls
// and estimations.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "suggestscore"

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
	OutcomeInvalid      = "invalid"
	OutcomeCancelled    = "cancelled"
	OutcomeError        = "error"
)

// Recorder owns a private registry so several can coexist in tests. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	vendorCalls    *prometheus.CounterVec
	vendorDuration prometheus.Histogram
	estimations    *prometheus.CounterVec
	queries        prometheus.Histogram
	scores         prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		vendorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_requests_total",
			Help:      "Suggestion endpoint requests by outcome",
		}, []string{"outcome"}),
		vendorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vendor_request_duration_seconds",
			Help:      "Latency of suggestion endpoint requests",
			Buckets:   prometheus.DefBuckets,
		}),
		estimations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimations_total",
			Help:      "Keyword estimations by outcome",
		}, []string{"outcome"}),
		queries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimation_queries",
			Help:      "Vendor calls issued per successful estimation, seed included",
			Buckets:   prometheus.LinearBuckets(1, 4, 10),
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimation_score",
			Help:      "Scores returned by successful estimations",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.vendorCalls,
		r.vendorDuration,
		r.estimations,
		r.queries,
		r.scores,
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveVendorCall records one suggestion endpoint round trip.
func (r *Recorder) ObserveVendorCall(err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.vendorCalls.WithLabelValues(Outcome(err)).Inc()
	r.vendorDuration.Observe(elapsed.Seconds())
}

// ObserveEstimation records a finished estimation. queries counts every vendor
// call made, the seed included; it and score are ignored on failure.
func (r *Recorder) ObserveEstimation(score, queries int, err error) {
	if r == nil {
		return
	}
	r.estimations.WithLabelValues(Outcome(err)).Inc()
	if err != nil {
		return
	}
	r.queries.Observe(float64(queries))
	r.scores.Observe(float64(score))
}

// Outcome classifies err into a low-cardinality label. Cancellation wins over
// the network error that usually wraps it.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	case errors.Is(err, domain.ErrParse):
		return OutcomeParseError
	case errors.Is(err, domain.ErrNetwork):
		return OutcomeNetworkError
	case errors.Is(err, domain.ErrValidation):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
