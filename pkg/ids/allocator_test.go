package ids

import "testing"

func TestAllocatorStartsAtZero(t *testing.T) {
	a := NewAllocator()

	if got := a.NextNodeID(); got != 0 {
		t.Errorf("first node id = %d, want 0", got)
	}
	if got := a.NextEdgeID(); got != 0 {
		t.Errorf("first edge id = %d, want 0", got)
	}
}

func TestAllocatorMonotonic(t *testing.T) {
	a := NewAllocator()

	var last uint64
	for i := 0; i < 100; i++ {
		id := a.NextNodeID()
		if i > 0 && id <= last {
			t.Fatalf("node id %d not greater than previous %d", id, last)
		}
		last = id
	}
}

func TestAllocatorCountersIndependent(t *testing.T) {
	a := NewAllocator()

	a.NextNodeID()
	a.NextNodeID()
	a.NextNodeID()

	if got := a.NextEdgeID(); got != 0 {
		t.Errorf("edge counter advanced by node allocation: got %d", got)
	}

	if node, edge := a.NextNodeID(), a.NextEdgeID(); node != 3 || edge != 1 {
		t.Errorf("next ids = (%d, %d), want (3, 1)", node, edge)
	}
}

func TestAllocatorsAreIsolated(t *testing.T) {
	a := NewAllocator()
	b := NewAllocator()

	a.NextNodeID()
	a.NextNodeID()

	if got := b.NextNodeID(); got != 0 {
		t.Errorf("second allocator shares state: got %d", got)
	}
}
