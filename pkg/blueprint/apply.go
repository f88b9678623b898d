package blueprint

import (
	"fmt"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// Result summarizes a replay.
type Result struct {
	Topologies []topology.Topology
	Links      int // inter-topology edges created
	Duplicates int // links that were already present
}

// Apply replays the blueprint into store: topologies in order, then their
// overrides, then links. The blueprint is validated and checked against the
// room left in store first, so a rejected blueprint leaves store unchanged.
func (bp *Blueprint) Apply(store *composition.Store) (*Result, error) {
	const op = "ApplyBlueprint"

	res := &Result{}
	if err := bp.Validate(); err != nil {
		return res, err
	}
	if have, add := store.TopologyCount(), len(bp.Topologies); have+add > composition.MaxTopologies {
		return res, composition.NewError(op).Topology().
			Cause(composition.ErrTopologyLimitExceeded).
			Detail(fmt.Errorf("blueprint adds %d to %d present, maximum is %d", add, have, composition.MaxTopologies)).Err()
	}

	byName := make(map[string]topology.Topology, len(bp.Topologies))

	for _, t := range bp.Topologies {
		kind, err := topology.ParseKind(t.Kind)
		if err != nil {
			return res, fmt.Errorf("topology %q: %w", t.Name, err)
		}
		added, err := store.AddTopology(t.Name, kind, t.VMs)
		if err != nil {
			return res, fmt.Errorf("topology %q: %w", t.Name, err)
		}
		res.Topologies = append(res.Topologies, added)
		byName[t.Name] = added

		for _, o := range t.Overrides {
			upd, err := o.update()
			if err != nil {
				return res, fmt.Errorf("topology %q vm %d: %w", t.Name, o.Index, err)
			}
			if _, err := store.UpdateNode(added.NodeIDs[o.Index-1], upd); err != nil {
				return res, fmt.Errorf("topology %q vm %d: %w", t.Name, o.Index, err)
			}
		}
	}

	for _, l := range bp.Connections {
		from, err := resolve(byName, l.From)
		if err != nil {
			return res, err
		}
		to, err := resolve(byName, l.To)
		if err != nil {
			return res, err
		}
		_, created, err := store.Connect(from, to)
		if err != nil {
			return res, fmt.Errorf("link %s -> %s: %w", l.From, l.To, err)
		}
		if created {
			res.Links++
		} else {
			res.Duplicates++
		}
	}

	if bp.Name != "" {
		store.SetSliceName(bp.Name)
	}
	return res, nil
}

func (o Override) update() (composition.NodeUpdate, error) {
	upd := composition.NodeUpdate{
		DisplayName:    o.Name,
		InternetAccess: o.Internet,
	}
	if o.Flavor != nil {
		f, err := topology.ParseFlavor(*o.Flavor)
		if err != nil {
			return upd, err
		}
		upd.Flavor = &f
	}
	return upd, nil
}

func resolve(byName map[string]topology.Topology, raw string) (uint64, error) {
	ep, err := ParseEndpoint(raw)
	if err != nil {
		return 0, err
	}
	t, ok := byName[ep.Topology]
	if !ok || ep.Index > len(t.NodeIDs) {
		return 0, fmt.Errorf("endpoint %s does not resolve", ep)
	}
	return t.NodeIDs[ep.Index-1], nil
}
