package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned by [Build] when a node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Build] when two node records share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is wrapped by [MalformedEdgeError] when an edge endpoint
	// references a node that is not in the node set.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidWeight is wrapped by [MalformedEdgeError] when an edge weight
	// is NaN or infinite.
	ErrInvalidWeight = errors.New("edge weight must be finite")
)

// MalformedEdgeError reports an edge record that cannot be part of the graph.
// Construction is aborted when it is returned.
type MalformedEdgeError struct {
	Index   int    // Position of the edge in the input slice
	Edge    Edge   // The offending edge record
	Missing string // The unknown endpoint ID, empty for weight errors
	Err     error  // ErrUnknownNode or ErrInvalidWeight
}

func (e *MalformedEdgeError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("malformed edge #%d %s->%s: %v %q", e.Index, e.Edge.Source, e.Edge.Target, e.Err, e.Missing)
	}
	return fmt.Sprintf("malformed edge #%d %s->%s: %v", e.Index, e.Edge.Source, e.Edge.Target, e.Err)
}

func (e *MalformedEdgeError) Unwrap() error { return e.Err }

// EmptyGraphWarning is a non-fatal condition: the graph has no nodes or no
// edges. The pipeline keeps going and produces empty or trivial results.
type EmptyGraphWarning struct {
	Nodes int
	Edges int
}

func (w EmptyGraphWarning) Error() string {
	if w.Nodes == 0 {
		return "graph has no nodes"
	}
	return fmt.Sprintf("graph has %d nodes but no edges", w.Nodes)
}
