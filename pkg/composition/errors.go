package composition

import (
	"errors"
	"fmt"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// Sentinel errors. Every failure returned by this package matches exactly one
// of them with errors.Is; kind errors additionally match ErrInvalidInput.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidTopologyKind   = topology.ErrInvalidTopologyKind
	ErrTopologyLimitExceeded = errors.New("topology limit exceeded")
	ErrNodeNotFound          = errors.New("node not found")
	ErrSameTopology          = errors.New("nodes belong to the same topology")
	ErrEmptyName             = errors.New("slice name is empty")
	ErrNoTopologies          = errors.New("composition has no topologies")
)

// CompositionError provides structured error information for composition operations.
type CompositionError struct {
	Op     string // Operation that failed (e.g., "AddTopology", "Connect")
	Entity string // Entity type (e.g., "node", "topology", "slice")
	ID     uint64 // Entity ID, meaningful only when HasID is set
	HasID  bool
	Field  string // Offending field for input errors
	Cause  error  // Sentinel from the list above
	Detail error  // Lower-level error, if any
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	msg := e.Cause.Error()
	if e.Detail != nil {
		msg = fmt.Sprintf("%v: %v", e.Cause, e.Detail)
	}
	switch {
	case e.HasID && e.Field != "":
		return fmt.Sprintf("%s %s %d (field %s): %s", e.Op, e.Entity, e.ID, e.Field, msg)
	case e.HasID:
		return fmt.Sprintf("%s %s %d: %s", e.Op, e.Entity, e.ID, msg)
	case e.Field != "":
		return fmt.Sprintf("%s %s (field %s): %s", e.Op, e.Entity, e.Field, msg)
	default:
		return fmt.Sprintf("%s %s: %s", e.Op, e.Entity, msg)
	}
}

// Unwrap exposes both the sentinel and the lower-level detail to errors.Is.
func (e *CompositionError) Unwrap() []error {
	if e.Detail == nil {
		return []error{e.Cause}
	}
	return []error{e.Cause, e.Detail}
}

// ErrorBuilder provides a fluent interface for building CompositionErrors.
type ErrorBuilder struct {
	err CompositionError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: CompositionError{Op: op}}
}

// Node sets the entity to "node" with the given ID.
func (b *ErrorBuilder) Node(id uint64) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = id
	b.err.HasID = true
	return b
}

// Topology sets the entity to "topology".
func (b *ErrorBuilder) Topology() *ErrorBuilder {
	b.err.Entity = "topology"
	return b
}

// Slice sets the entity to "slice".
func (b *ErrorBuilder) Slice() *ErrorBuilder {
	b.err.Entity = "slice"
	return b
}

// Field sets the offending field name.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Cause sets the sentinel cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Detail attaches a lower-level error.
func (b *ErrorBuilder) Detail(err error) *ErrorBuilder {
	b.err.Detail = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op string, nodeID uint64) error {
	return NewError(op).Node(nodeID).Cause(ErrNodeNotFound).Err()
}

// InvalidInputError creates an input validation error for a field.
func InvalidInputError(op, entity, field string, detail error) error {
	return &CompositionError{Op: op, Entity: entity, Field: field, Cause: ErrInvalidInput, Detail: detail}
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsConflict returns true for errors caused by the composition's current
// state rather than by malformed arguments.
func IsConflict(err error) bool {
	return errors.Is(err, ErrTopologyLimitExceeded) || errors.Is(err, ErrSameTopology)
}
