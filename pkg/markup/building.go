package markup

import "github.com/Faultbox/facadegen/pkg/math"

// Facade places a facade node in the world. Direction is the horizontal
// unit vector pointing along the facade from its left to its right edge.
type Facade struct {
	Node      NodeID
	Origin    math.Vec3
	Direction math.Vec3
	Width     float64
	Height    float64
}

// Corners returns the facade corners bottom-left, bottom-right, top-right,
// top-left.
func (f Facade) Corners() [4]math.Vec3 {
	right := math.Step(f.Origin, f.Direction.Normalize(), f.Width)
	up := math.ZAxis.Scale(f.Height)
	return [4]math.Vec3{f.Origin, right, right.Add(up), f.Origin.Add(up)}
}

// Building is the markup of one building and its footprint.
type Building struct {
	ID string
	// Style is the architectural style class textures are catalogued by.
	Style     string
	Footprint Footprint
	Tree      *Tree
	Facades   []Facade
}
