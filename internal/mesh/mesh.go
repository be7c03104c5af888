// Package mesh provides the vertex and face buffer facade geometry is
// emitted into.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/facadegen/pkg/math"
)

// Mesh errors.
var (
	ErrVertexOutOfRange = errors.New("face references a vertex that does not exist")
	ErrFaceOutOfRange   = errors.New("face does not exist")
)

// Data layer names written by the facade renderers.
const (
	LayerSize        = "size"
	LayerOffset      = "offset"
	LayerVertexColor = "color"
)

// FaceID identifies a created face.
type FaceID int

// Sink receives the geometry of a facade. Vertices are append-only and
// never change once appended.
type Sink interface {
	AppendVertex(p math.Vec3) int
	Vertex(index int) math.Vec3
	NumVertices() int
	CreateFace(indices [4]int, uvs [4]math.Vec2) (FaceID, error)
	SetFaceUV(f FaceID, layer string, uv math.Vec2) error
	SetFaceColor(f FaceID, layer string, color [4]float32) error
	SetFaceMaterial(f FaceID, materialID string) error
}

// Face is a quad with per-corner texture coordinates.
type Face struct {
	Indices  [4]int
	UVs      [4]math.Vec2
	Material string
	Data     map[string]math.Vec2
	Colors   map[string][4]float32
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh is an in-memory Sink.
type Mesh struct {
	Vertices []math.Vec3
	Faces    []Face
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AppendVertex implements Sink.
func (m *Mesh) AppendVertex(p math.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// Vertex implements Sink.
func (m *Mesh) Vertex(index int) math.Vec3 {
	return m.Vertices[index]
}

// NumVertices implements Sink.
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// CreateFace implements Sink. All indices are checked before the face is
// added.
func (m *Mesh) CreateFace(indices [4]int, uvs [4]math.Vec2) (FaceID, error) {
	for _, i := range indices {
		if i < 0 || i >= len(m.Vertices) {
			return -1, fmt.Errorf("%w: %d of %d", ErrVertexOutOfRange, i, len(m.Vertices))
		}
	}
	m.Faces = append(m.Faces, Face{Indices: indices, UVs: uvs})
	return FaceID(len(m.Faces) - 1), nil
}

// SetFaceUV implements Sink.
func (m *Mesh) SetFaceUV(f FaceID, layer string, uv math.Vec2) error {
	face, err := m.face(f)
	if err != nil {
		return err
	}
	if face.Data == nil {
		face.Data = make(map[string]math.Vec2)
	}
	face.Data[layer] = uv
	return nil
}

// SetFaceColor implements Sink.
func (m *Mesh) SetFaceColor(f FaceID, layer string, color [4]float32) error {
	face, err := m.face(f)
	if err != nil {
		return err
	}
	if face.Colors == nil {
		face.Colors = make(map[string][4]float32)
	}
	face.Colors[layer] = color
	return nil
}

// SetFaceMaterial implements Sink.
func (m *Mesh) SetFaceMaterial(f FaceID, materialID string) error {
	face, err := m.face(f)
	if err != nil {
		return err
	}
	face.Material = materialID
	return nil
}

func (m *Mesh) face(f FaceID) (*Face, error) {
	if f < 0 || int(f) >= len(m.Faces) {
		return nil, fmt.Errorf("%w: %d", ErrFaceOutOfRange, f)
	}
	return &m.Faces[f], nil
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}
