// Package ids issues session-scoped node and edge identifiers.
package ids

// Allocator hands out monotonically increasing node and edge ids.
// Both counters start at 0 and are never reused. An Allocator belongs to a
// single composition session and is not safe for concurrent use.
type Allocator struct {
	nextNodeID uint64
	nextEdgeID uint64
}

// NewAllocator creates an allocator with both counters at 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NextNodeID returns the next node id.
func (a *Allocator) NextNodeID() uint64 {
	id := a.nextNodeID
	a.nextNodeID++
	return id
}

// NextEdgeID returns the next edge id.
func (a *Allocator) NextEdgeID() uint64 {
	id := a.nextEdgeID
	a.nextEdgeID++
	return id
}
