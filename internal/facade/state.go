package facade

import (
	"github.com/Faultbox/facadegen/pkg/markup"
	"github.com/Faultbox/facadegen/pkg/math"
)

// Phase is the traversal state of a markup node.
type Phase uint8

const (
	Unvisited Phase = iota
	MarkupPrepared
	Subdivided
	Invalid
	Emitted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case MarkupPrepared:
		return "markup-prepared"
	case Subdivided:
		return "subdivided"
	case Invalid:
		return "invalid"
	case Emitted:
		return "emitted"
	}
	return "unvisited"
}

// Quad is the region assigned to a node: four vertex indices and their
// texture coordinates, ordered bottom-left, bottom-right, top-right,
// top-left.
type Quad struct {
	Indices [4]int
	UVs     [4]math.Vec2
}

// Width returns the extent of the quad along U.
func (q Quad) Width() float64 {
	return q.UVs[1].U - q.UVs[0].U
}

// Height returns the extent of the quad along V.
func (q Quad) Height() float64 {
	return q.UVs[2].V - q.UVs[1].V
}

type nodeState struct {
	phase Phase
	quad  Quad
	err   error

	// width is the extent allotted by the parent's division.
	width    float64
	hasWidth bool

	// level context, set for level and basement strips
	group     *markup.LevelGroup
	parent    markup.NodeID
	texOffset math.Vec2
}

// State is the side table of layout results for one building, keyed by
// node. The markup tree itself is never modified.
type State struct {
	nodes map[markup.NodeID]*nodeState
}

func newState() *State {
	return &State{nodes: make(map[markup.NodeID]*nodeState)}
}

func (s *State) get(id markup.NodeID) *nodeState {
	st, ok := s.nodes[id]
	if !ok {
		st = &nodeState{parent: markup.NoParent}
		s.nodes[id] = st
	}
	return st
}

// Phase returns the traversal phase of a node.
func (s *State) Phase(id markup.NodeID) Phase {
	if st, ok := s.nodes[id]; ok {
		return st.phase
	}
	return Unvisited
}

// Valid reports whether a node was laid out without error.
func (s *State) Valid(id markup.NodeID) bool {
	return s.Phase(id) != Invalid
}

// Err returns the reason a node was marked invalid.
func (s *State) Err(id markup.NodeID) error {
	if st, ok := s.nodes[id]; ok {
		return st.err
	}
	return nil
}

// Quad returns the last region assigned to a node.
func (s *State) Quad(id markup.NodeID) (Quad, bool) {
	st, ok := s.nodes[id]
	if !ok || st.phase == Unvisited {
		return Quad{}, false
	}
	return st.quad, true
}
