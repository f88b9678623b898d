// Package blueprint loads declarative slice descriptions from YAML and
// replays them into a composition.
package blueprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/validation"
)

// ErrInvalidBlueprint wraps every structural problem found while loading.
var ErrInvalidBlueprint = errors.New("invalid blueprint")

// Blueprint is a slice described as data.
type Blueprint struct {
	Name        string     `yaml:"name" validate:"max=64"`
	Topologies  []Topology `yaml:"topologies" validate:"required,min=1,max=3,dive"`
	Connections []Link     `yaml:"connections" validate:"dive"`
}

// Topology is one topology of a blueprint.
type Topology struct {
	Name      string     `yaml:"name" validate:"max=64"`
	Kind      string     `yaml:"kind" validate:"required"`
	VMs       int        `yaml:"vms" validate:"required,min=1,max=64"`
	Overrides []Override `yaml:"overrides" validate:"dive"`
}

// Override edits one generated VM. Index is 1-based, matching the default
// VM names.
type Override struct {
	Index    int     `yaml:"index" validate:"required,min=1"`
	Name     *string `yaml:"name" validate:"omitempty,min=1,max=64"`
	Flavor   *string `yaml:"flavor" validate:"omitempty,oneof=f1 f2 f3 f4 f5 f6"`
	Internet *bool   `yaml:"internet"`
}

// Link connects two VMs written as "topologyName/vmIndex".
type Link struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// Endpoint is a parsed link end.
type Endpoint struct {
	Topology string
	Index    int // 1-based
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%d", e.Topology, e.Index)
}

// ParseEndpoint parses "topologyName/vmIndex". The topology name may itself
// contain slashes; the index is whatever follows the last one.
func ParseEndpoint(s string) (Endpoint, error) {
	i := strings.LastIndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return Endpoint{}, fmt.Errorf("endpoint %q: want topology/index", s)
	}
	idx, err := strconv.Atoi(s[i+1:])
	if err != nil || idx < 1 {
		return Endpoint{}, fmt.Errorf("endpoint %q: index must be a positive integer", s)
	}
	return Endpoint{Topology: strings.TrimSpace(s[:i]), Index: idx}, nil
}

// Load decodes and validates a blueprint. Unknown keys are rejected.
func Load(r io.Reader) (*Blueprint, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bp Blueprint
	if err := dec.Decode(&bp); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidBlueprint)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return &bp, nil
}

// LoadFile reads a blueprint from disk.
func LoadFile(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Validate checks tags, fills default topology names, and resolves every
// kind, override and link against the declared topologies. A blueprint that
// passes Validate can only fail to apply for lack of room in the target.
func (bp *Blueprint) Validate() error {
	if err := validation.Struct(bp); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}

	sizes := make(map[string]int, len(bp.Topologies))
	for i := range bp.Topologies {
		t := &bp.Topologies[i]
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			t.Name = composition.DefaultTopologyName(i)
		}
		if _, dup := sizes[t.Name]; dup {
			return fmt.Errorf("%w: topology name %q used twice", ErrInvalidBlueprint, t.Name)
		}
		sizes[t.Name] = t.VMs

		if _, err := topology.ParseKind(t.Kind); err != nil {
			return fmt.Errorf("%w: topology %q: %v", ErrInvalidBlueprint, t.Name, err)
		}
		for _, o := range t.Overrides {
			if o.Index > t.VMs {
				return fmt.Errorf("%w: topology %q override index %d exceeds %d VMs",
					ErrInvalidBlueprint, t.Name, o.Index, t.VMs)
			}
			if o.Name != nil && strings.TrimSpace(*o.Name) == "" {
				return fmt.Errorf("%w: topology %q override %d has a blank name",
					ErrInvalidBlueprint, t.Name, o.Index)
			}
		}
	}

	for _, l := range bp.Connections {
		var ends [2]Endpoint
		for i, raw := range []string{l.From, l.To} {
			ep, err := ParseEndpoint(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
			}
			n, ok := sizes[ep.Topology]
			if !ok {
				return fmt.Errorf("%w: endpoint %q names unknown topology", ErrInvalidBlueprint, raw)
			}
			if ep.Index > n {
				return fmt.Errorf("%w: endpoint %q exceeds %d VMs", ErrInvalidBlueprint, raw, n)
			}
			ends[i] = ep
		}
		if ends[0].Topology == ends[1].Topology {
			return fmt.Errorf("%w: link %s -> %s stays inside topology %q",
				ErrInvalidBlueprint, l.From, l.To, ends[0].Topology)
		}
	}
	return nil
}
