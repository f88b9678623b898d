package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r.HTTPRequestsTotal == nil || r.HTTPRequestDuration == nil {
		t.Error("HTTP metrics not initialized")
	}
	if r.TopologiesAddedTotal == nil || r.ConnectionsTotal == nil {
		t.Error("composition metrics not initialized")
	}
	if r.SessionsActive == nil || r.SubmissionsTotal == nil {
		t.Error("session or provisioner metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	// Separate registries must not collide on metric names.
	a, b := NewRegistry(), NewRegistry()
	a.RecordConnect(OutcomeCreated)

	if got := counterValue(t, b.ConnectionsTotal.WithLabelValues(OutcomeCreated)); got != 0 {
		t.Errorf("second registry saw %v connections", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/sessions", "201", 10*time.Millisecond)
	r.RecordHTTPRequest("POST", "/sessions", "201", 20*time.Millisecond)
	r.RecordHTTPRequest("GET", "/sessions/{id}", "404", 5*time.Millisecond)

	if got := counterValue(t, r.HTTPRequestsTotal.WithLabelValues("POST", "/sessions", "201")); got != 2 {
		t.Errorf("POST counter = %v, want 2", got)
	}
	if got := counterValue(t, r.HTTPRequestsTotal.WithLabelValues("GET", "/sessions/{id}", "404")); got != 1 {
		t.Errorf("GET counter = %v, want 1", got)
	}
}

func TestRecordTopologyAdded(t *testing.T) {
	r := NewRegistry()

	r.RecordTopologyAdded("ring", 4)
	r.RecordTopologyAdded("star", 3)
	r.RecordTopologyAdded("ring", 2)
	r.RecordTopologyRejected("limit")

	if got := counterValue(t, r.TopologiesAddedTotal.WithLabelValues("ring")); got != 2 {
		t.Errorf("ring topologies = %v, want 2", got)
	}
	if got := counterValue(t, r.NodesGeneratedTotal); got != 9 {
		t.Errorf("nodes generated = %v, want 9", got)
	}
	if got := counterValue(t, r.TopologyRejectsTotal.WithLabelValues("limit")); got != 1 {
		t.Errorf("rejects = %v, want 1", got)
	}

	observer, err := r.TopologyNodeCount.GetMetricWithLabelValues("ring")
	if err != nil {
		t.Fatal(err)
	}
	var m dto.Metric
	if err := observer.(prometheus.Histogram).Write(&m); err != nil {
		t.Fatal(err)
	}
	if m.Histogram.GetSampleCount() != 2 || m.Histogram.GetSampleSum() != 6 {
		t.Errorf("histogram count=%d sum=%v", m.Histogram.GetSampleCount(), m.Histogram.GetSampleSum())
	}
}

func TestRecordConnectAndUpdates(t *testing.T) {
	r := NewRegistry()

	r.RecordConnect(OutcomeCreated)
	r.RecordConnect(OutcomeNoop)
	r.RecordConnect(OutcomeNoop)
	r.RecordConnect(OutcomeRejected)
	r.RecordNodeUpdate(true)
	r.RecordNodeUpdate(false)

	for outcome, want := range map[string]float64{OutcomeCreated: 1, OutcomeNoop: 2, OutcomeRejected: 1} {
		if got := counterValue(t, r.ConnectionsTotal.WithLabelValues(outcome)); got != want {
			t.Errorf("connections{%s} = %v, want %v", outcome, got, want)
		}
	}
	if got := counterValue(t, r.NodeUpdatesTotal.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Errorf("rejected updates = %v, want 1", got)
	}
}

func TestSessionGauge(t *testing.T) {
	r := NewRegistry()

	r.SessionCreated()
	r.SessionCreated()
	r.SessionRemoved("idle")

	if got := gaugeValue(t, r.SessionsActive); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
	if got := counterValue(t, r.SessionsCreatedTotal); got != 2 {
		t.Errorf("created sessions = %v, want 2", got)
	}
	if got := counterValue(t, r.SessionsEvictedTotal.WithLabelValues("idle")); got != 1 {
		t.Errorf("idle evictions = %v, want 1", got)
	}
}

func TestRecordSubmission(t *testing.T) {
	r := NewRegistry()

	r.RecordSubmission(true, 7, 120*time.Millisecond)
	r.RecordSubmission(false, 3, 2*time.Second)

	if got := counterValue(t, r.SubmissionsTotal.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("successes = %v, want 1", got)
	}
	if got := counterValue(t, r.SubmissionsTotal.WithLabelValues(OutcomeFailure)); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := counterValue(t, r.SubmittedVMsTotal); got != 7 {
		t.Errorf("submitted VMs = %v, want 7 (failures do not count)", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if gaugeValue(t, r.GoRoutines) < 1 {
		t.Error("goroutine gauge should be at least 1")
	}
	if gaugeValue(t, r.UptimeSeconds) < 0 {
		t.Error("uptime must not be negative")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordTopologyAdded("mesh", 3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `slicer_topologies_added_total{kind="mesh"} 1`) {
		t.Errorf("exposition missing topology counter:\n%s", body)
	}
}

func TestHTTPHistogramBuckets(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("PATCH", "PATCH /sessions/{id}/nodes/{nodeId}", "200", 300*time.Microsecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var hist *dto.Histogram
	for _, mf := range families {
		if mf.GetName() == "slicer_http_request_duration_seconds" {
			hist = mf.GetMetric()[0].GetHistogram()
		}
	}
	if hist == nil {
		t.Fatal("duration histogram not gathered")
	}

	buckets := hist.GetBucket()
	if first := buckets[0]; first.GetUpperBound() != .0005 || first.GetCumulativeCount() != 1 {
		t.Errorf("in-memory edit not in the sub-millisecond bucket: %v", first)
	}
	if last := buckets[len(buckets)-1].GetUpperBound(); last < 30 {
		t.Errorf("largest bucket %v does not cover a slow provisioner", last)
	}
	if got := httpResponseSizeBuckets[len(httpResponseSizeBuckets)-1]; got != 128*4096 {
		t.Errorf("largest size bucket = %v", got)
	}
}
