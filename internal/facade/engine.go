// Package facade subdivides facade quads along their markup and emits the
// resulting faces with texture coordinates and materials.
package facade

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/facadegen/internal/material"
	"github.com/Faultbox/facadegen/internal/mesh"
	"github.com/Faultbox/facadegen/pkg/markup"
	"github.com/Faultbox/facadegen/pkg/math"
)

// Engine errors.
var (
	ErrUnsupportedArrangement = errors.New("vertical arrangement of divisions is not supported")
)

// DefaultVertexColor marks faces that carry a facade texture.
var DefaultVertexColor = [4]float32{0.7, 0.3, 0.3, 1}

// BakeRecorder collects the texture bake parameters of an export.
type BakeRecorder interface {
	RecordFacade(b material.FacadeBake)
	RecordDoor(b material.DoorBake)
}

// Options configure an Engine.
type Options struct {
	// LevelDetail subdivides levels into their items instead of emitting
	// one textured face per level.
	LevelDetail bool
	VertexColor [4]float32
	Divider     markup.Divider
	Bakes       BakeRecorder
}

// Engine renders building markup into a mesh sink.
type Engine struct {
	sink      mesh.Sink
	resolver  *material.Resolver
	opts      Options
	log       *zap.Logger
	renderers map[markup.Kind]Renderer
}

// New creates an engine emitting into sink.
func New(sink mesh.Sink, resolver *material.Resolver, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Divider == nil {
		opts.Divider = markup.DefaultDivider{}
	}
	if opts.VertexColor == ([4]float32{}) {
		opts.VertexColor = DefaultVertexColor
	}
	return &Engine{
		sink:      sink,
		resolver:  resolver,
		opts:      opts,
		log:       log,
		renderers: defaultRenderers(),
	}
}

// SetRenderer replaces the renderer used for a node kind.
func (e *Engine) SetRenderer(kind markup.Kind, r Renderer) {
	e.renderers[kind] = r
}

// Walk is the traversal of one building. It owns the layout side table and
// the material memo of that building.
type Walk struct {
	e     *Engine
	b     *markup.Building
	state *State
	memo  *material.Memo
}

// NewWalk starts the traversal of a building.
func (e *Engine) NewWalk(b *markup.Building) *Walk {
	return &Walk{
		e:     e,
		b:     b,
		state: newState(),
		memo:  material.NewMemo(),
	}
}

// State returns the layout results of the walk.
func (w *Walk) State() *State {
	return w.state
}

// Building returns the building being walked.
func (w *Walk) Building() *markup.Building {
	return w.b
}

// RenderBuilding emits every facade of a building. A facade whose markup
// does not fit is skipped; the remaining facades are still rendered and
// the failures are returned together.
func (e *Engine) RenderBuilding(b *markup.Building) (*State, error) {
	w := e.NewWalk(b)
	var errs []error
	for _, f := range b.Facades {
		corners := f.Corners()
		var q Quad
		for i, c := range corners {
			q.Indices[i] = e.sink.AppendVertex(c)
		}
		q.UVs = math.Quad(0, 0, f.Width, f.Height)

		if err := w.RenderFacade(f.Node, f.Width, q); err != nil {
			errs = append(errs, err)
		}
	}
	return w.state, errors.Join(errs...)
}

// RenderFacade renders a facade node into the quad whose corner vertices
// already exist in the sink. width is the facade extent along U.
func (w *Walk) RenderFacade(id markup.NodeID, width float64, q Quad) error {
	st := w.state.get(id)
	st.width, st.hasWidth = width, true

	w.render(id, q)
	if st.phase == Invalid {
		return fmt.Errorf("building %s facade %d: %w", w.b.ID, id, st.err)
	}
	w.e.log.Debug("facade rendered",
		zap.String("building", w.b.ID),
		zap.Int("node", int(id)),
		zap.Int("vertices", w.e.sink.NumVertices()))
	return nil
}

// render dispatches a node to the renderer of its kind.
func (w *Walk) render(id markup.NodeID, q Quad) {
	kind := w.b.Tree.Node(id).Kind
	r, ok := w.e.renderers[kind]
	if !ok {
		w.invalidate(id, fmt.Errorf("%w: no renderer for %s", markup.ErrUnknownKind, kind))
		return
	}
	r.Render(w, id, q)
}

// width returns the extent allotted to a node, falling back to its own
// markup width.
func (w *Walk) width(id markup.NodeID) float64 {
	if st, ok := w.state.nodes[id]; ok && st.hasWidth {
		return st.width
	}
	return w.b.Tree.Node(id).Width
}

func (w *Walk) setWidth(id markup.NodeID, width float64) {
	st := w.state.get(id)
	st.width, st.hasWidth = width, true
}

// invalidate marks a node invalid; nothing is emitted for its subtree.
func (w *Walk) invalidate(id markup.NodeID, err error) {
	st := w.state.get(id)
	st.phase = Invalid
	st.err = err
	w.e.log.Warn("markup subtree skipped",
		zap.String("building", w.b.ID),
		zap.Int("node", int(id)),
		zap.String("class", w.b.Tree.Node(id).ClassName()),
		zap.Error(err))
}
