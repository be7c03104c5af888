package facade

import (
	"go.uber.org/zap"

	"github.com/Faultbox/facadegen/internal/material"
	"github.com/Faultbox/facadegen/internal/mesh"
	"github.com/Faultbox/facadegen/pkg/markup"
	"github.com/Faultbox/facadegen/pkg/math"
)

// Renderer emits the geometry of one markup node into the quad assigned
// to it by its parent.
type Renderer interface {
	Render(w *Walk, id markup.NodeID, q Quad)
}

func defaultRenderers() map[markup.Kind]Renderer {
	renderers := make(map[markup.Kind]Renderer)
	for k := markup.KindFacade; k.IsContainer() || k.IsTerminal(); k++ {
		switch {
		case k.IsLevel():
			renderers[k] = levelRenderer{}
		case k.IsContainer():
			renderers[k] = containerRenderer{}
		default:
			renderers[k] = itemRenderer{}
		}
	}
	return renderers
}

// containerRenderer lays out facades and divs. A container without markup
// is a plain stretch of cladding.
type containerRenderer struct{}

func (containerRenderer) Render(w *Walk, id markup.NodeID, q Quad) {
	if len(w.b.Tree.Children(id)) == 0 {
		materialID := w.e.resolver.ResolveCladding(w.memo, w.b, id)
		w.emit(id, q, materialID)
		return
	}
	w.renderMarkup(id, q)
}

// levelRenderer emits level and basement strips. By default a level with
// markup becomes one face textured with a facade texture matching its
// item pattern; with LevelDetail the markup is laid out item by item.
type levelRenderer struct{}

func (levelRenderer) Render(w *Walk, id markup.NodeID, q Quad) {
	t := w.b.Tree
	if len(t.Children(id)) == 0 {
		w.emit(id, q, w.e.resolver.ResolveCladding(w.memo, w.b, id))
		return
	}
	if w.e.opts.LevelDetail {
		w.renderMarkup(id, q)
		return
	}

	st := w.state.get(id)
	group := st.group
	if group == nil {
		// a level rendered outside a level stack covers only itself
		group = &markup.LevelGroup{Index1: 0, Index2: 0, SingleLevel: true, Item: id}
	}
	materialID := w.e.resolver.ResolveLevel(w.memo, w.b, id, material.BuildingPart(t, *group))
	face, ok := w.emit(id, q, materialID)
	if !ok || materialID == "" {
		return
	}

	parentWidth := q.Width()
	if st.parent != markup.NoParent {
		parentWidth = w.width(st.parent)
	}
	w.setLayers(id, face,
		math.Vec2{U: parentWidth, V: w.heightForMaterial(*group, q)},
		st.texOffset)
	w.recordFacadeBake(materialID)
}

// heightForMaterial is the height of one tile of the level texture.
func (w *Walk) heightForMaterial(g markup.LevelGroup, q Quad) float64 {
	heights := w.b.Footprint.Heights
	switch {
	case w.b.Tree.Node(g.Item).Kind == markup.KindBasement:
		return q.Height()
	case g.SingleLevel:
		return heights.LevelHeight(g.Index1)
	}
	return heights.Height(g.Index1, g.Index2) / float64(g.Index2-g.Index1+1)
}

// itemRenderer emits windows, doors, balconies and wall segments.
type itemRenderer struct{}

func (itemRenderer) Render(w *Walk, id markup.NodeID, q Quad) {
	materialID := w.e.resolver.ResolveItem(w.memo, w.b, id)
	face, ok := w.emit(id, q, materialID)
	if !ok || materialID == "" {
		return
	}
	w.setLayers(id, face, math.Vec2{U: q.Width(), V: q.Height()}, q.UVs[0])
	if w.b.Tree.Node(id).Kind == markup.KindDoor {
		w.recordDoorBake(id, materialID, q)
	}
}

// emit creates the face of a node and assigns its material. It reports
// false when the sink rejected the face.
func (w *Walk) emit(id markup.NodeID, q Quad, materialID string) (mesh.FaceID, bool) {
	st := w.state.get(id)
	st.quad = q

	sink := w.e.sink
	face, err := sink.CreateFace(q.Indices, q.UVs)
	if err != nil {
		w.invalidate(id, err)
		return 0, false
	}
	if err := sink.SetFaceMaterial(face, materialID); err != nil {
		w.invalidate(id, err)
		return 0, false
	}
	st.phase = Emitted
	return face, true
}

func (w *Walk) setLayers(id markup.NodeID, face mesh.FaceID, size, offset math.Vec2) {
	sink := w.e.sink
	for _, err := range []error{
		sink.SetFaceUV(face, mesh.LayerSize, size),
		sink.SetFaceUV(face, mesh.LayerOffset, offset),
		sink.SetFaceColor(face, mesh.LayerVertexColor, w.e.opts.VertexColor),
	} {
		if err != nil {
			w.invalidate(id, err)
			return
		}
	}
}

func (w *Walk) recordFacadeBake(materialID string) {
	bakes := w.e.opts.Bakes
	cladding := w.e.resolver.Cladding(w.memo, w.b)
	if bakes == nil || cladding == nil {
		return
	}
	facade, ok := w.e.resolver.Texture(materialID)
	if !ok {
		return
	}
	bake, err := material.NewFacadeBake(materialID, facade, cladding)
	if err != nil {
		w.e.log.Debug("facade bake skipped", zap.String("material", materialID), zap.Error(err))
		return
	}
	bakes.RecordFacade(bake)
}

func (w *Walk) recordDoorBake(id markup.NodeID, materialID string, q Quad) {
	bakes := w.e.opts.Bakes
	cladding := w.e.resolver.Cladding(w.memo, w.b)
	if bakes == nil || cladding == nil {
		return
	}
	door, ok := w.e.resolver.Texture(materialID)
	if !ok {
		return
	}
	bake, err := material.NewDoorBake(materialID, door, cladding, q.UVs)
	if err != nil {
		w.e.log.Debug("door bake skipped",
			zap.Int("node", int(id)),
			zap.String("material", materialID),
			zap.Error(err))
		return
	}
	bakes.RecordDoor(bake)
}
