package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/blueprint"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/layout"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/serializer"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
)

// Submitter delivers a serialized slice to a provisioner.
type Submitter interface {
	Submit(ctx context.Context, req *serializer.SliceRequest) (*transport.Response, error)
}

// Session is one editing session: a composition plus its allocator.
// Operations on a session are serialized by its own lock.
type Session struct {
	ID      string
	Created time.Time

	mu         sync.Mutex
	store      *composition.Store
	lastAccess atomic.Int64 // unix nanos

	logger  logging.Logger
	metrics *metrics.Registry
}

// State is what the editor needs to redraw a session.
type State struct {
	ID             string           `json:"id"`
	SliceName      string           `json:"sliceName,omitempty"`
	CanAddTopology bool             `json:"canAddTopology"`
	CanSubmit      bool             `json:"canSubmit"`
	View           composition.View `json:"view"`
}

func newSession(id string, now time.Time, logger logging.Logger, reg *metrics.Registry) *Session {
	s := &Session{
		ID:      id,
		Created: now,
		store:   composition.NewStore(),
		logger:  logger.With(logging.SessionID(id)),
		metrics: reg,
	}
	s.lastAccess.Store(now.UnixNano())
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastAccess.Store(now.UnixNano())
}

// LastAccess returns when the session was last used.
func (s *Session) LastAccess() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

// AddTopology generates and appends a topology. A blank name gets the
// default name for the next topology slot.
func (s *Session) AddTopology(name string, kind topology.Kind, vms int) (topology.Topology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = composition.DefaultTopologyName(s.store.TopologyCount())
	}

	t, err := s.store.AddTopology(name, kind, vms)
	if err != nil {
		s.metrics.RecordTopologyRejected(rejectReason(err))
		s.logger.Warn("topology rejected", logging.Kind(string(kind)), logging.Count(vms), logging.Error(err))
		return t, err
	}

	s.metrics.RecordTopologyAdded(t.Kind.String(), len(t.NodeIDs))
	s.logger.Info("topology added",
		logging.TopologyID(t.ID), logging.Kind(t.Kind.String()), logging.Count(len(t.NodeIDs)))
	return t, nil
}

// UpdateNode applies a partial VM edit.
func (s *Session) UpdateNode(id uint64, upd composition.NodeUpdate) (topology.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.UpdateNode(id, upd)
	s.metrics.RecordNodeUpdate(err == nil)
	if err != nil {
		s.logger.Debug("node update rejected", logging.NodeID(id), logging.Error(err))
		return n, err
	}
	return n, nil
}

// Connect links two nodes of different topologies. created is false when
// the pair was already linked.
func (s *Session) Connect(a, b uint64) (topology.Edge, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, created, err := s.store.Connect(a, b)
	switch {
	case err != nil:
		s.metrics.RecordConnect(metrics.OutcomeRejected)
		s.logger.Debug("connect rejected", logging.NodeID(a), logging.Uint64("peer_id", b), logging.Error(err))
	case created:
		s.metrics.RecordConnect(metrics.OutcomeCreated)
		s.logger.Info("nodes connected", logging.EdgeID(e.ID), logging.NodeID(a), logging.Uint64("peer_id", b))
	default:
		s.metrics.RecordConnect(metrics.OutcomeNoop)
	}
	return e, created, err
}

// ApplyBlueprint replays bp into the session under one lock, so no other
// edit interleaves with the replay. A rejected blueprint changes nothing.
func (s *Session) ApplyBlueprint(bp *blueprint.Blueprint) (*blueprint.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := bp.Apply(s.store)
	if err != nil {
		s.metrics.RecordTopologyRejected(rejectReason(err))
		s.logger.Warn("blueprint rejected", logging.Count(len(bp.Topologies)), logging.Error(err))
		return res, err
	}
	for _, t := range res.Topologies {
		s.metrics.RecordTopologyAdded(t.Kind.String(), len(t.NodeIDs))
	}

	s.logger.Info("blueprint applied",
		logging.Count(len(res.Topologies)), logging.Int("links", res.Links))
	return res, nil
}

// State returns the current view with capability flags.
func (s *Session) State(cfg layout.Config) State {
	s.mu.Lock()
	snap := s.store.Snapshot()
	canAdd, canSubmit := s.store.CanAddTopology(), s.store.CanSubmit()
	s.mu.Unlock()

	return State{
		ID:             s.ID,
		SliceName:      snap.SliceName,
		CanAddTopology: canAdd,
		CanSubmit:      canSubmit,
		View:           snap.View(cfg),
	}
}

// Request serializes the current composition under sliceName.
func (s *Session) Request(sliceName string) (*serializer.SliceRequest, error) {
	s.mu.Lock()
	snap := s.store.Snapshot()
	s.mu.Unlock()

	return serializer.ToRequest(snap, sliceName)
}

// Submit serializes the composition and hands it to sub. The session lock
// is not held during the network call; a failed submission leaves the
// composition untouched and editable.
func (s *Session) Submit(ctx context.Context, sub Submitter, sliceName string) (*transport.Response, error) {
	req, err := s.Request(sliceName)
	if err != nil {
		return nil, err
	}

	resp, err := sub.Submit(ctx, req)
	if err != nil {
		s.logger.Warn("submission failed", logging.SliceName(req.Name), logging.Error(err))
		return resp, err
	}

	s.mu.Lock()
	s.store.SetSliceName(req.Name)
	s.mu.Unlock()

	s.logger.Info("slice submitted", logging.SliceName(req.Name), logging.Count(req.VMCount()))
	return resp, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, composition.ErrTopologyLimitExceeded):
		return "limit"
	case errors.Is(err, composition.ErrInvalidTopologyKind):
		return "kind"
	default:
		return "invalid"
	}
}
