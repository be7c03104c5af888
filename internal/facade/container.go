package facade

import (
	"fmt"

	"github.com/Faultbox/facadegen/pkg/markup"
	"github.com/Faultbox/facadegen/pkg/math"
)

// divCursor is the running state threaded through generateDivs: the left
// boundary of the next item and its U coordinate.
type divCursor struct {
	prev1, prev2 int
	texU         float64
}

// levelCursor is the running state threaded through generateLevelDiv: the
// bottom boundary of the next strip and its V coordinate.
type levelCursor struct {
	prev1, prev2 int
	texV         float64
}

// levelStrip is a level group emitted below the topmost one.
type levelStrip struct {
	group  markup.LevelGroup
	height float64
}

// renderMarkup lays out the markup of a container inside q.
func (w *Walk) renderMarkup(id markup.NodeID, q Quad) {
	st := w.state.get(id)
	st.quad = q
	st.phase = MarkupPrepared
	st.err = nil

	if len(w.b.Tree.Children(id)) == 0 {
		w.invalidate(id, markup.ErrEmptyMarkup)
		return
	}
	if w.b.Tree.HasLevelMarkup(id) {
		w.renderLevels(id)
	} else {
		w.renderDivs(id)
	}
	if st.phase == Subdivided {
		st.phase = Emitted
	}
}

// renderLevels stacks the level groups of a node bottom to top. The
// topmost group closes on the parent's top edge.
func (w *Walk) renderLevels(id markup.NodeID) {
	t := w.b.Tree
	st := w.state.get(id)
	parent := st.quad

	width := w.width(id)
	if required := t.WidthForVerticalArrangement(id); math.Exceeds(required, width) {
		w.invalidate(id, fmt.Errorf("%w: levels need %.3f, have %.3f", markup.ErrLayoutOverflow, required, width))
		return
	}

	footprint := w.b.Footprint
	levelGroups := t.LevelGroups(id, footprint.NumLevels)
	if levelGroups.NumActiveGroups == 0 {
		w.invalidate(id, fmt.Errorf("%w: no active level groups", markup.ErrEmptyMarkup))
		return
	}

	var strips []levelStrip
	if footprint.MinHeight == 0 && levelGroups.Basement != nil {
		basementHeight, ok := t.StyleAttr(id, "basementHeight")
		if !ok {
			basementHeight = footprint.Heights.Basement
		}
		if basementHeight > 0 {
			strips = append(strips, levelStrip{*levelGroups.Basement, basementHeight})
		}
	}

	heights := footprint.Heights
	groupFound := footprint.MinLevel == 0
	for i := 0; i < levelGroups.NumActiveGroups-1; i++ {
		group := levelGroups.Groups[i]
		if !groupFound && group.Index1 <= footprint.MinLevel && footprint.MinLevel <= group.Index2 {
			groupFound = true
		}
		if !groupFound {
			continue
		}
		height := heights.Height(group.Index1, group.Index2)
		if group.SingleLevel {
			height = heights.LevelHeight(group.Index1)
		}
		strips = append(strips, levelStrip{group, height})
	}

	var stacked float64
	for _, s := range strips {
		stacked += s.height
	}
	if available := parent.Height(); available > 0 && math.Exceeds(stacked, available) {
		w.invalidate(id, fmt.Errorf("%w: levels need %.3f, have %.3f", markup.ErrLayoutOverflow, stacked, available))
		return
	}
	st.phase = Subdivided

	texU1 := parent.UVs[0].U
	texU2 := parent.UVs[1].U
	cur := levelCursor{
		prev1: parent.Indices[0],
		prev2: parent.Indices[1],
		texV:  parent.UVs[0].V,
	}
	for _, s := range strips {
		cur = w.generateLevelDiv(id, s.group, s.height, cur, texU1, texU2)
	}

	// the last level group
	last := *levelGroups.Last()
	w.renderLevel(id, last, Quad{
		Indices: [4]int{cur.prev1, cur.prev2, parent.Indices[2], parent.Indices[3]},
		UVs:     math.Quad(texU1, cur.texV, texU2, parent.UVs[2].V),
	}, math.Vec2{U: texU1, V: cur.texV})
}

// generateLevelDiv emits one horizontal strip of the given height above
// the cursor and returns the cursor for the next strip.
func (w *Walk) generateLevelDiv(parent markup.NodeID, group markup.LevelGroup, height float64,
	cur levelCursor, texU1, texU2 float64) levelCursor {

	sink := w.e.sink
	index1 := sink.AppendVertex(math.Step(sink.Vertex(cur.prev1), math.ZAxis, height))
	index2 := sink.AppendVertex(math.Step(sink.Vertex(cur.prev2), math.ZAxis, height))
	texV2 := cur.texV + height

	w.renderLevel(parent, group, Quad{
		Indices: [4]int{cur.prev1, cur.prev2, index2, index1},
		UVs:     math.Quad(texU1, cur.texV, texU2, texV2),
	}, math.Vec2{U: texU1, V: cur.texV})

	return levelCursor{prev1: index1, prev2: index2, texV: texV2}
}

// renderLevel hands a strip to the renderer of the group's item along with
// its level context.
func (w *Walk) renderLevel(parent markup.NodeID, group markup.LevelGroup, q Quad, texOffset math.Vec2) {
	st := w.state.get(group.Item)
	g := group
	st.group = &g
	st.parent = parent
	st.texOffset = texOffset
	st.width, st.hasWidth = w.width(parent), true
	w.render(group.Item, q)
}

// renderDivs lays out horizontal markup. The closing item always ends on
// the parent's right edge.
func (w *Walk) renderDivs(id markup.NodeID) {
	t := w.b.Tree
	n := t.Node(id)
	st := w.state.get(id)
	parent := st.quad

	if n.Arrangement != markup.Horizontal {
		w.invalidate(id, ErrUnsupportedArrangement)
		return
	}

	width := w.width(id)
	division, err := w.e.opts.Divider.Divide(t, id, width)
	if err != nil {
		w.invalidate(id, err)
		return
	}
	st.phase = Subdivided

	children := n.Children
	numItems := len(children)
	if numItems == 1 {
		// the single item takes the parent's quad as is
		w.setWidth(children[0], width)
		w.render(children[0], parent)
		return
	}

	sink := w.e.sink
	unitVector := math.UnitVector(sink.Vertex(parent.Indices[0]), sink.Vertex(parent.Indices[1]), width)
	texV1 := parent.UVs[0].V
	texV2 := parent.UVs[3].V
	cur := divCursor{
		prev1: parent.Indices[0],
		prev2: parent.Indices[3],
		texU:  parent.UVs[0].U,
	}

	symmetry := n.Symmetry
	mirrorStart := numItems - 1
	if symmetry == markup.MiddleOfLast {
		mirrorStart = numItems - 2
	}
	generate := func(from, to, step int) {
		cur = w.generateDivs(id, division.Widths, unitVector, from, to, step, cur, texV1, texV2)
	}

	for r := 0; r < division.NumRepeats-1; r++ {
		generate(0, numItems, 1)
		if symmetry != markup.NoSymmetry {
			generate(mirrorStart, -1, -1)
		}
	}
	lastIndex := numItems - 1
	if symmetry != markup.NoSymmetry {
		generate(0, numItems, 1)
		generate(mirrorStart, 0, -1)
		lastIndex = 0
	} else {
		generate(0, numItems-1, 1)
	}

	// the last item closes the row and takes whatever width is left
	last := children[lastIndex]
	w.setWidth(last, parent.UVs[1].U-cur.texU)
	w.render(last, Quad{
		Indices: [4]int{cur.prev1, parent.Indices[1], parent.Indices[2], cur.prev2},
		UVs:     math.Quad(cur.texU, texV1, parent.UVs[1].U, texV2),
	})
}

// generateDivs emits the markup items from..to (exclusive) in the direction
// of step, each starting on the boundary the previous one ended on.
func (w *Walk) generateDivs(id markup.NodeID, widths []float64, unitVector math.Vec3,
	from, to, step int, cur divCursor, texV1, texV2 float64) divCursor {

	sink := w.e.sink
	children := w.b.Tree.Children(id)
	v1 := sink.Vertex(cur.prev1)
	v2 := sink.Vertex(cur.prev2)
	for i := from; (step > 0 && i < to) || (step < 0 && i > to); i += step {
		extent := widths[i]
		v1 = math.Step(v1, unitVector, extent)
		v2 = math.Step(v2, unitVector, extent)
		index1 := sink.AppendVertex(v1)
		index2 := sink.AppendVertex(v2)
		texU2 := cur.texU + extent

		w.setWidth(children[i], extent)
		w.render(children[i], Quad{
			Indices: [4]int{cur.prev1, index1, index2, cur.prev2},
			UVs:     math.Quad(cur.texU, texV1, texU2, texV2),
		})
		cur = divCursor{prev1: index1, prev2: index2, texU: texU2}
	}
	return cur
}
