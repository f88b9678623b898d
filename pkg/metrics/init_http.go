package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Editing calls stay in memory and finish in well under a millisecond;
	// submit waits on the provisioner for up to its timeout.
	httpLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .05, .25, 1, 2.5, 5, 10, 30}

	// A session view of three 64-VM meshes is the largest body served.
	httpResponseSizeBuckets = prometheus.ExponentialBuckets(128, 4, 7)
)

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_http_requests_total",
			Help: "API requests served, by route and status code",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slicer_http_request_duration_seconds",
			Help:    "API request latency in seconds, submit included",
			Buckets: httpLatencyBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "slicer_http_requests_in_flight",
			Help: "API requests currently being handled",
		},
	)

	r.HTTPResponseSizeBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slicer_http_response_size_bytes",
			Help:    "Size of API response bodies in bytes",
			Buckets: httpResponseSizeBuckets,
		},
		[]string{"method", "path"},
	)
}
