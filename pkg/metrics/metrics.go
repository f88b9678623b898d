package metrics

import (
	"runtime"
	"time"
)

// Outcome labels shared by composition and provisioner metrics.
const (
	OutcomeCreated  = "created"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTopologyAdded records a generated topology of the given kind and size.
func (r *Registry) RecordTopologyAdded(kind string, nodes int) {
	r.TopologiesAddedTotal.WithLabelValues(kind).Inc()
	r.TopologyNodeCount.WithLabelValues(kind).Observe(float64(nodes))
	r.NodesGeneratedTotal.Add(float64(nodes))
}

// RecordTopologyRejected records a refused AddTopology call.
func (r *Registry) RecordTopologyRejected(reason string) {
	r.TopologyRejectsTotal.WithLabelValues(reason).Inc()
}

// RecordNodeUpdate records a VM edit.
func (r *Registry) RecordNodeUpdate(ok bool) {
	if ok {
		r.NodeUpdatesTotal.WithLabelValues(OutcomeSuccess).Inc()
		return
	}
	r.NodeUpdatesTotal.WithLabelValues(OutcomeRejected).Inc()
}

// RecordConnect records a connect request: created, noop or rejected.
func (r *Registry) RecordConnect(outcome string) {
	r.ConnectionsTotal.WithLabelValues(outcome).Inc()
}

// SessionCreated bumps the live session gauge.
func (r *Registry) SessionCreated() {
	r.SessionsCreatedTotal.Inc()
	r.SessionsActive.Inc()
}

// SessionRemoved drops the live session gauge.
func (r *Registry) SessionRemoved(reason string) {
	r.SessionsEvictedTotal.WithLabelValues(reason).Inc()
	r.SessionsActive.Dec()
}

// RecordSubmission records one provisioner round trip.
func (r *Registry) RecordSubmission(ok bool, vms int, duration time.Duration) {
	r.SubmissionDuration.Observe(duration.Seconds())
	if ok {
		r.SubmissionsTotal.WithLabelValues(OutcomeSuccess).Inc()
		r.SubmittedVMsTotal.Add(float64(vms))
		return
	}
	r.SubmissionsTotal.WithLabelValues(OutcomeFailure).Inc()
}

// UpdateSystemMetrics refreshes uptime and goroutine gauges.
func (r *Registry) UpdateSystemMetrics() {
	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
}
