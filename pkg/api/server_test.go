package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/api/middleware"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/config"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/serializer"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/session"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
)

type fakeSubmitter struct {
	mu   sync.Mutex
	got  []*serializer.SliceRequest
	resp *transport.Response
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, req *serializer.SliceRequest) (*transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, req)
	if f.resp == nil {
		return &transport.Response{Success: true}, f.err
	}
	return f.resp, f.err
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	sub     *fakeSubmitter
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Sessions.Max = 2
	for _, m := range mutate {
		m(&cfg)
	}

	reg := metrics.NewRegistry()
	mgr := session.NewManager(session.Config{Max: cfg.Sessions.Max, IdleTTL: cfg.Sessions.IdleTTL},
		session.WithMetrics(reg))
	sub := &fakeSubmitter{}
	srv := NewServer(cfg, mgr, sub, WithMetrics(reg))
	return &testServer{t: t, handler: srv.Handler(), sub: sub}
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) newSession() string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/sessions", "")
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp SessionResponse
	decode(ts.t, rec, &resp)
	return resp.ID
}

func (ts *testServer) addTopology(id, body string) TopologyResponse {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/sessions/"+id+"/topologies", body)
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp TopologyResponse
	decode(ts.t, rec, &resp)
	return resp
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var resp ErrorResponse
	decode(t, rec, &resp)
	return resp.Code
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()

	rec := ts.do(http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state session.State
	decode(t, rec, &state)
	assert.Equal(t, id, state.ID)
	assert.True(t, state.CanAddTopology)
	assert.False(t, state.CanSubmit)
	assert.Empty(t, state.View.Nodes)

	rec = ts.do(http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, errorCode(t, rec))

	rec = ts.do(http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLimit(t *testing.T) {
	ts := newTestServer(t)
	ts.newSession()
	ts.newSession()

	rec := ts.do(http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAddTopology(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()

	ring := ts.addTopology(id, `{"name":"core","kind":"ring","vms":3}`)
	assert.Equal(t, "core", ring.Name)
	assert.Equal(t, "ring", ring.Kind)
	assert.Equal(t, []uint64{0, 1, 2}, ring.NodeIDs)

	star := ts.addTopology(id, `{"kind":"estrella","vms":2}`)
	assert.Equal(t, "Topology 2", star.Name, "blank names get the default")
	assert.Equal(t, "star", star.Kind)

	var state session.State
	decode(t, ts.do(http.MethodGet, "/sessions/"+id, ""), &state)
	assert.Len(t, state.View.Nodes, 5)
	assert.Len(t, state.View.Edges, 3+1)
	assert.True(t, state.CanSubmit)
}

func TestAddTopologyRejections(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown kind", `{"kind":"hexagon","vms":3}`, http.StatusBadRequest},
		{"zero vms", `{"kind":"ring","vms":0}`, http.StatusBadRequest},
		{"too many vms", `{"kind":"ring","vms":65}`, http.StatusBadRequest},
		{"unknown field", `{"kind":"ring","vms":3,"color":"red"}`, http.StatusBadRequest},
		{"malformed", `{"kind":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/sessions/"+id+"/topologies", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	var state session.State
	decode(t, ts.do(http.MethodGet, "/sessions/"+id, ""), &state)
	assert.Empty(t, state.View.Nodes, "rejected requests change nothing")
}

func TestTopologyLimit(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()
	for i := 0; i < 3; i++ {
		ts.addTopology(id, `{"kind":"mesh","vms":2}`)
	}

	rec := ts.do(http.MethodPost, "/sessions/"+id+"/topologies", `{"kind":"mesh","vms":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var state session.State
	decode(t, ts.do(http.MethodGet, "/sessions/"+id, ""), &state)
	assert.False(t, state.CanAddTopology)
	assert.Len(t, state.View.Nodes, 6)
}

func TestUpdateNode(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()
	ts.addTopology(id, `{"name":"A","kind":"ring","vms":3}`)

	rec := ts.do(http.MethodPatch, "/sessions/"+id+"/nodes/1", `{"name":"web","flavor":"f3","internet":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var node NodeResponse
	decode(t, rec, &node)
	assert.Equal(t, NodeResponse{ID: 1, Name: "web", TopologyID: 0, Flavor: "f3", Internet: true}, node)

	rec = ts.do(http.MethodPatch, "/sessions/"+id+"/nodes/1", `{"internet":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &node)
	assert.Equal(t, "web", node.Name, "absent fields are unchanged")
	assert.False(t, node.Internet)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown node", "/nodes/99", `{"name":"x"}`, http.StatusNotFound},
		{"bad id", "/nodes/abc", `{"name":"x"}`, http.StatusBadRequest},
		{"empty edit", "/nodes/0", `{}`, http.StatusBadRequest},
		{"blank name", "/nodes/0", `{"name":"   "}`, http.StatusBadRequest},
		{"bad flavor", "/nodes/0", `{"flavor":"f9"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPatch, "/sessions/"+id+tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestConnect(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()
	ts.addTopology(id, `{"name":"A","kind":"ring","vms":3}`)
	ts.addTopology(id, `{"name":"B","kind":"star","vms":2}`)

	path := "/sessions/" + id + "/connections"

	rec := ts.do(http.MethodPost, path, `{"from":0,"to":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first ConnectionResponse
	decode(t, rec, &first)
	assert.True(t, first.Created)
	assert.Equal(t, uint64(0), first.From)
	assert.Equal(t, uint64(4), first.To)

	rec = ts.do(http.MethodPost, path, `{"from":4,"to":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var again ConnectionResponse
	decode(t, rec, &again)
	assert.False(t, again.Created)
	assert.Equal(t, first.ID, again.ID)

	assert.Equal(t, http.StatusConflict, ts.do(http.MethodPost, path, `{"from":0,"to":1}`).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, path, `{"from":0,"to":42}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, path, `{"from":0}`).Code)
}

func TestSliceRequest(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()

	rec := ts.do(http.MethodGet, "/sessions/"+id+"/request?name=S1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "no topologies yet")

	ts.addTopology(id, `{"name":"A","kind":"ring","vms":3}`)
	ts.addTopology(id, `{"name":"B","kind":"star","vms":2}`)
	ts.do(http.MethodPost, "/sessions/"+id+"/connections", `{"from":0,"to":3}`)

	rec = ts.do(http.MethodGet, "/sessions/"+id+"/request", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "name is required")

	rec = ts.do(http.MethodGet, "/sessions/"+id+"/request?name=S1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	decode(t, rec, &raw)
	assert.Equal(t, "S1", raw["name"])
	topologies := raw["topologies"].([]any)
	require.Len(t, topologies, 2)
	assert.Equal(t, "ring", topologies[0].(map[string]any)["kind"])
	assert.Equal(t, []any{map[string]any{"from": "A-VM1", "to": "B-VM1"}}, raw["connections"])
}

func TestSubmit(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()
	ts.addTopology(id, `{"name":"A","kind":"tree","vms":4}`)

	rec := ts.do(http.MethodPost, "/sessions/"+id+"/submit", `{"name":"  lab  "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp SubmitResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)

	require.Len(t, ts.sub.got, 1)
	assert.Equal(t, "lab", ts.sub.got[0].Name)
	assert.Equal(t, 4, ts.sub.got[0].VMCount())

	var state session.State
	decode(t, ts.do(http.MethodGet, "/sessions/"+id, ""), &state)
	assert.Equal(t, "lab", state.SliceName)
}

func TestSubmitFailures(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()
	path := "/sessions/" + id + "/submit"

	assert.Equal(t, http.StatusUnprocessableEntity, ts.do(http.MethodPost, path, `{"name":"S1"}`).Code)
	assert.Empty(t, ts.sub.got, "nothing is sent without topologies")

	ts.addTopology(id, `{"kind":"ring","vms":3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, ts.do(http.MethodPost, path, "").Code)

	ts.sub.resp = &transport.Response{Success: false, Error: "no capacity"}
	ts.sub.err = &transport.SubmitError{StatusCode: 400, Message: "no capacity", Cause: transport.ErrRejected}
	rec := ts.do(http.MethodPost, path, `{"name":"S1"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp SubmitResponse
	decode(t, rec, &resp)
	assert.Equal(t, SubmitResponse{Success: false, Error: "no capacity"}, resp)

	ts.sub.resp = nil
	ts.sub.err = fmt.Errorf("failed to reach provisioner: %w", context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, ts.do(http.MethodPost, path, `{"name":"S1"}`).Code)

	ts.sub.err = errors.New("connection refused at 10.0.0.5")
	rec = ts.do(http.MethodPost, path, `{"name":"S1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5", "internal details stay in the log")

	var state session.State
	decode(t, ts.do(http.MethodGet, "/sessions/"+id, ""), &state)
	assert.Empty(t, state.SliceName)
	assert.True(t, state.CanAddTopology, "failed submissions leave the slice editable")
}

func TestApplyBlueprint(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newSession()

	body := `
name: lab
topologies:
  - name: core
    kind: mesh
    vms: 3
    overrides:
      - {index: 2, flavor: f4, internet: true}
  - {name: edge, kind: tree, vms: 3}
connections:
  - {from: core/1, to: edge/1}
  - {from: edge/1, to: core/1}
`
	rec := ts.do(http.MethodPost, "/sessions/"+id+"/blueprint", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp BlueprintResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Topologies, 2)
	assert.Equal(t, 1, resp.Links)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Len(t, resp.View.Nodes, 6)
	assert.Equal(t, "f4", resp.View.Nodes[1].Flavor)

	rec = ts.do(http.MethodPost, "/sessions/"+id+"/blueprint", "topologies: []\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/sessions/"+id+"/blueprint", "topologies:\n  - {kind: ring, vms: 2}\n  - {kind: ring, vms: 2}\n")
	assert.Equal(t, http.StatusConflict, rec.Code, "only one more topology fits")

	rec = ts.do(http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state session.State
	decode(t, rec, &state)
	assert.Len(t, state.View.Nodes, 6, "a rejected blueprint changes nothing")
	assert.True(t, state.CanAddTopology)
}

func TestBodySizeLimit(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.Server.MaxBodyBytes = 32 })
	id := ts.newSession()

	big := `{"name":"` + strings.Repeat("a", 64) + `","kind":"ring","vms":3}`
	rec := ts.do(http.MethodPost, "/sessions/"+id+"/topologies", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodPut, "/sessions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	ts.newSession()

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := ts.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `slicer_http_requests_total{method="POST",path="POST /sessions",status="201"} 1`)
	assert.Contains(t, body, "slicer_sessions_active 1")
	assert.Contains(t, body, "slicer_uptime_seconds")
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(nil))
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get(middleware.RequestIDHeader))
}
