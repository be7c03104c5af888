package markup

import "errors"

// Markup errors.
var (
	ErrUnknownKind    = errors.New("unknown markup kind")
	ErrLayoutOverflow = errors.New("markup does not fit its parent")
	ErrEmptyMarkup    = errors.New("node has no markup")
)

// NodeID is the index of a node in its Tree.
type NodeID int

// NoParent is passed to Tree.Add for root nodes.
const NoParent NodeID = -1

// Node is one element of facade markup. Nodes are not modified once the
// tree is built; layout results are kept by the renderer.
type Node struct {
	Kind Kind
	// Class is the style class counted in pattern histograms.
	// Defaults to Kind.String().
	Class       string
	Width       float64
	Height      float64
	Arrangement Arrangement
	Symmetry    Symmetry
	// Repeat fits as many copies of the markup as the width allows.
	Repeat bool
	// Levels is the inclusive level index range of a level node.
	// Negative indices count from the top, -1 being the last level.
	Levels [2]int
	// BuildingPart overrides the part name used for texture lookups.
	BuildingPart string
	// Style holds numeric style block attributes such as "basementHeight".
	Style    map[string]float64
	Children []NodeID
}

// ClassName returns the class counted for this node in pattern histograms.
func (n *Node) ClassName() string {
	if n.Class != "" {
		return n.Class
	}
	return n.Kind.String()
}

// Tree owns the nodes of one building's markup.
type Tree struct {
	nodes []Node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends n as the last child of parent and returns its id.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Children = nil
	t.nodes = append(t.nodes, n)
	if parent != NoParent {
		p := &t.nodes[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

// Node returns the node with the given id. The result must be treated as
// read-only.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Children returns the markup of a node in layout order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// StyleAttr returns a style block attribute of a node.
func (t *Tree) StyleAttr(id NodeID, name string) (float64, bool) {
	v, ok := t.nodes[id].Style[name]
	return v, ok
}

// HasLevelMarkup reports whether the markup of a node starts with a level,
// meaning it is stacked vertically.
func (t *Tree) HasLevelMarkup(id NodeID) bool {
	children := t.nodes[id].Children
	return len(children) > 0 && t.nodes[children[0]].Kind.IsLevel()
}
