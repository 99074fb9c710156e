package network

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology is matched by every *TopologyError.
var ErrInvalidTopology = errors.New("invalid network topology")

// TopologyError reports malformed layer sizes or weight matrices that do not chain.
type TopologyError struct {
	Sizes  []int  // Requested layer sizes, when built from sizes
	Layer  int    // Offending layer index, when built from layers
	Reason string // Human-readable cause
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	if e.Sizes != nil {
		return fmt.Sprintf("invalid topology %v: %s", e.Sizes, e.Reason)
	}
	return "invalid topology: " + e.Reason
}

// Is reports whether target is ErrInvalidTopology.
func (e *TopologyError) Is(target error) bool {
	return target == ErrInvalidTopology
}
