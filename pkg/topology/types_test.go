package topology

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"ring", Ring, false},
		{"RING", Ring, false},
		{" anillo ", Ring, false},
		{"star", Star, false},
		{"estrella", Star, false},
		{"mesh", Mesh, false},
		{"malla", Mesh, false},
		{"tree", Tree, false},
		{"arbol", Tree, false},
		{"bus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTopologyKind) {
					t.Errorf("ParseKind(%q) error = %v, want ErrInvalidTopologyKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlavor(t *testing.T) {
	for _, f := range Flavors {
		got, err := ParseFlavor(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFlavor(%q) = %q, %v", f, got, err)
		}
	}

	if got, err := ParseFlavor("F4"); err != nil || got != F4 {
		t.Errorf("ParseFlavor(F4) = %q, %v", got, err)
	}

	for _, bad := range []string{"f0", "f7", "large", ""} {
		if _, err := ParseFlavor(bad); !errors.Is(err, ErrInvalidFlavor) {
			t.Errorf("ParseFlavor(%q) error = %v, want ErrInvalidFlavor", bad, err)
		}
	}
}

func TestPairKeyIsUnordered(t *testing.T) {
	if NewPairKey(7, 3) != NewPairKey(3, 7) {
		t.Error("PairKey should not depend on argument order")
	}

	e := Edge{From: 9, To: 2}
	if e.Key() != (PairKey{Lo: 2, Hi: 9}) {
		t.Errorf("Edge.Key() = %+v", e.Key())
	}
}

func TestTopologyCloneIsDeep(t *testing.T) {
	orig := Topology{ID: 1, Name: "T", Kind: Mesh, NodeIDs: []uint64{4, 5}}
	clone := orig.Clone()
	clone.NodeIDs[0] = 99

	if orig.NodeIDs[0] != 4 {
		t.Error("Clone shares NodeIDs with original")
	}
}

func TestEdgeKindString(t *testing.T) {
	if IntraTopology.String() != "intra-topology" || InterTopology.String() != "inter-topology" {
		t.Errorf("unexpected EdgeKind strings: %s, %s", IntraTopology, InterTopology)
	}
}
