package markup

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/facadegen/pkg/math"
)

// Document is the YAML form of a set of buildings.
type Document struct {
	Buildings []BuildingDoc `yaml:"buildings"`
}

// BuildingDoc is the YAML form of a Building.
type BuildingDoc struct {
	ID        string      `yaml:"id"`
	Style     string      `yaml:"style"`
	Footprint Footprint   `yaml:"footprint"`
	Facades   []FacadeDoc `yaml:"facades"`
}

// FacadeDoc is the YAML form of a facade and its markup. The facade's
// width and height come from the inlined node.
type FacadeDoc struct {
	Origin    [3]float64 `yaml:"origin"`
	Direction [3]float64 `yaml:"direction"`
	NodeDoc   `yaml:",inline"`
}

// NodeDoc is the YAML form of a markup node.
type NodeDoc struct {
	Kind         string             `yaml:"kind"`
	Class        string             `yaml:"class"`
	Width        float64            `yaml:"width"`
	Height       float64            `yaml:"height"`
	Arrangement  string             `yaml:"arrangement"`
	Symmetry     string             `yaml:"symmetry"`
	Repeat       bool               `yaml:"repeat"`
	Levels       []int              `yaml:"levels"`
	BuildingPart string             `yaml:"building_part"`
	Style        map[string]float64 `yaml:"style"`
	Markup       []NodeDoc          `yaml:"markup"`
}

// Decode reads a YAML markup document.
func Decode(r io.Reader) ([]*Building, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding markup: %w", err)
	}
	return doc.Build()
}

// LoadFile reads a YAML markup document from disk.
func LoadFile(path string) ([]*Building, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Build converts the document into buildings with their markup trees.
func (d *Document) Build() ([]*Building, error) {
	buildings := make([]*Building, 0, len(d.Buildings))
	for i, bd := range d.Buildings {
		b := &Building{
			ID:        bd.ID,
			Style:     bd.Style,
			Footprint: bd.Footprint,
			Tree:      NewTree(),
		}
		if b.ID == "" {
			b.ID = fmt.Sprintf("building-%d", i)
		}
		for j, fd := range bd.Facades {
			nd := fd.NodeDoc
			nd.Kind = KindFacade.String()
			id, err := addNode(b.Tree, NoParent, nd)
			if err != nil {
				return nil, fmt.Errorf("building %s facade %d: %w", b.ID, j, err)
			}
			dir := toVec3(fd.Direction)
			if dir == (math.Vec3{}) {
				dir = math.Vec3{X: 1}
			}
			b.Facades = append(b.Facades, Facade{
				Node:      id,
				Origin:    toVec3(fd.Origin),
				Direction: dir,
				Width:     nd.Width,
				Height:    nd.Height,
			})
		}
		buildings = append(buildings, b)
	}
	return buildings, nil
}

func addNode(t *Tree, parent NodeID, nd NodeDoc) (NodeID, error) {
	kind, err := ParseKind(nd.Kind)
	if err != nil {
		return 0, err
	}
	arrangement, err := ParseArrangement(nd.Arrangement)
	if err != nil {
		return 0, err
	}
	symmetry, err := ParseSymmetry(nd.Symmetry)
	if err != nil {
		return 0, err
	}

	n := Node{
		Kind:         kind,
		Class:        nd.Class,
		Width:        nd.Width,
		Height:       nd.Height,
		Arrangement:  arrangement,
		Symmetry:     symmetry,
		Repeat:       nd.Repeat,
		BuildingPart: nd.BuildingPart,
		Style:        nd.Style,
	}
	switch len(nd.Levels) {
	case 0:
	case 1:
		n.Levels = [2]int{nd.Levels[0], nd.Levels[0]}
	default:
		n.Levels = [2]int{nd.Levels[0], nd.Levels[1]}
	}

	id := t.Add(parent, n)
	for _, child := range nd.Markup {
		if _, err := addNode(t, id, child); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func toVec3(v [3]float64) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
