package material

import (
	"go.uber.org/zap"

	"github.com/Faultbox/facadegen/internal/catalog"
	"github.com/Faultbox/facadegen/pkg/markup"
)

// Building parts used when a level carries no explicit override.
const (
	PartBasement    = "basement"
	PartGroundLevel = "groundlevel"
	PartLevel       = "level"
)

// Memo keeps the per-building resolution results, keyed by node. An absent
// entry means the node was never resolved; "" means no material applies.
type Memo struct {
	ids      map[markup.NodeID]string
	patterns map[markup.NodeID]markup.Pattern

	cladding         *catalog.TextureInfo
	claddingResolved bool
}

// NewMemo creates an empty memo for one building.
func NewMemo() *Memo {
	return &Memo{
		ids:      make(map[markup.NodeID]string),
		patterns: make(map[markup.NodeID]markup.Pattern),
	}
}

// MaterialID returns the resolved material of a node.
func (m *Memo) MaterialID(id markup.NodeID) (string, bool) {
	v, ok := m.ids[id]
	return v, ok
}

// Pattern returns the item histogram of a node, computing it on first use.
func (m *Memo) Pattern(t *markup.Tree, id markup.NodeID) markup.Pattern {
	p, ok := m.patterns[id]
	if !ok {
		p = markup.NewPattern(t, id)
		m.patterns[id] = p
	}
	return p
}

// Resolver maps markup nodes to materials.
type Resolver struct {
	facades  *catalog.Store
	cladding *catalog.CladdingStore
	registry *Registry
	log      *zap.Logger
}

// NewResolver creates a resolver over a loaded catalog.
func NewResolver(c *catalog.Catalog, registry *Registry, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		facades:  c.Facades,
		cladding: c.Cladding,
		registry: registry,
		log:      log,
	}
}

// Registry returns the registry materials are created in.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// BuildingPart returns the part a level group is textured as.
func BuildingPart(t *markup.Tree, g markup.LevelGroup) string {
	if part := t.Node(g.Item).BuildingPart; part != "" {
		return part
	}
	if t.Node(g.Item).Kind == markup.KindBasement {
		return PartBasement
	}
	if g.SingleLevel && g.Index1 == 0 {
		return PartGroundLevel
	}
	return PartLevel
}

// Cladding returns the cladding texture of a building. The lookup happens
// once per building so every wall of it shares one texture.
func (r *Resolver) Cladding(m *Memo, b *markup.Building) *catalog.TextureInfo {
	if !m.claddingResolved {
		m.cladding = r.cladding.TextureInfo(b.Style)
		m.claddingResolved = true
	}
	return m.cladding
}

// ResolveLevel returns the material of a level whose markup pattern is
// matched against facade textures for the building part.
func (r *Resolver) ResolveLevel(m *Memo, b *markup.Building, id markup.NodeID, part string) string {
	if v, ok := m.ids[id]; ok {
		return v
	}
	pattern := m.Pattern(b.Tree, id)
	return r.resolve(m, b, id, r.facades.TextureInfo(b.Style, part, pattern))
}

// ResolveItem returns the material of a terminal item. Walls take the
// building's cladding, other items a texture catalogued for their kind.
func (r *Resolver) ResolveItem(m *Memo, b *markup.Building, id markup.NodeID) string {
	if v, ok := m.ids[id]; ok {
		return v
	}
	n := b.Tree.Node(id)
	if n.Kind == markup.KindWall && n.BuildingPart == "" {
		return r.resolve(m, b, id, r.Cladding(m, b))
	}

	part := n.BuildingPart
	if part == "" {
		part = n.Kind.Part()
	}
	pattern := markup.Pattern{n.ClassName(): 1}
	return r.resolve(m, b, id, r.facades.TextureInfo(b.Style, part, pattern))
}

// ResolveCladding returns the cladding material of a node that carries no
// markup of its own.
func (r *Resolver) ResolveCladding(m *Memo, b *markup.Building, id markup.NodeID) string {
	if v, ok := m.ids[id]; ok {
		return v
	}
	return r.resolve(m, b, id, r.Cladding(m, b))
}

// Texture returns the texture a material was created from.
func (r *Resolver) Texture(materialID string) (*catalog.TextureInfo, bool) {
	mat, ok := r.registry.Get(materialID)
	if !ok {
		return nil, false
	}
	return &mat.Texture, true
}

func (r *Resolver) resolve(m *Memo, b *markup.Building, id markup.NodeID, ti *catalog.TextureInfo) string {
	if ti == nil {
		r.log.Debug("no texture matches",
			zap.String("building", b.ID),
			zap.Int("node", int(id)),
			zap.String("class", b.Tree.Node(id).ClassName()))
		m.ids[id] = ""
		return ""
	}

	materialID := ti.Name
	if err := r.registry.Ensure(materialID, ti, r.Cladding(m, b)); err != nil {
		r.log.Warn("material creation failed",
			zap.String("building", b.ID),
			zap.String("material", materialID),
			zap.Error(err))
		m.ids[id] = ""
		return ""
	}
	m.ids[id] = materialID
	return materialID
}
