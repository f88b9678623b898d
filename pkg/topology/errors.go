package topology

import "errors"

var (
	ErrInvalidTopologyKind = errors.New("invalid topology kind")
	ErrInvalidFlavor       = errors.New("invalid flavor")
	ErrInvalidNodeCount    = errors.New("node count must be at least 1")
)
