package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initProvisionerMetrics() {
	r.SubmissionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_submissions_total",
			Help: "Slice submissions to the provisioner, by outcome",
		},
		[]string{"outcome"},
	)

	r.SubmissionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slicer_submission_duration_seconds",
			Help:    "Provisioner round-trip latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	r.SubmittedVMsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "slicer_submitted_vms_total",
			Help: "VMs included in accepted submissions",
		},
	)
}
