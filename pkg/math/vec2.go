package math

// Vec2 is a texture coordinate pair (U, V), expressed in meters of facade.
type Vec2 struct {
	U, V float64
}

// Quad returns the four UV corners of the rectangle [u1,u2]x[v1,v2] in
// face order: bottom-left, bottom-right, top-right, top-left.
func Quad(u1, v1, u2, v2 float64) [4]Vec2 {
	return [4]Vec2{{u1, v1}, {u2, v1}, {u2, v2}, {u1, v2}}
}
