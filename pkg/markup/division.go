package markup

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/facadegen/pkg/math"
)

// Division is the layout of a horizontal markup within its parent width.
type Division struct {
	// Widths holds the extent allotted to each child, in markup order.
	Widths []float64
	// NumRepeats is how many times the markup sequence is laid out.
	NumRepeats int
}

// Divider computes the division of a node's width among its markup.
type Divider interface {
	Divide(t *Tree, id NodeID, width float64) (Division, error)
}

// DefaultDivider lays markup out at its natural widths. Repeating markup is
// fitted as many whole times as the width allows and stretched to fill it;
// otherwise the slack is left to the closing item.
type DefaultDivider struct{}

// Divide implements Divider.
func (DefaultDivider) Divide(t *Tree, id NodeID, width float64) (Division, error) {
	n := t.Node(id)
	if len(n.Children) == 0 {
		return Division{}, ErrEmptyMarkup
	}

	widths := t.childWidths(id)
	unit := unitWidth(widths, n.Symmetry)
	if math.Exceeds(unit, width) {
		return Division{}, fmt.Errorf("%w: markup width %.3f > %.3f", ErrLayoutOverflow, unit, width)
	}

	d := Division{Widths: widths, NumRepeats: 1}
	if n.Repeat && unit > 0 {
		d.NumRepeats = int(gomath.Floor(width/unit + math.Epsilon))
		if d.NumRepeats < 1 {
			d.NumRepeats = 1
		}
		scale := width / (float64(d.NumRepeats) * unit)
		for i := range d.Widths {
			d.Widths[i] *= scale
		}
	}
	return d, nil
}

// MarkupWidth returns the minimum width a node needs for its markup.
func (t *Tree) MarkupWidth(id NodeID) float64 {
	n := t.Node(id)
	if len(n.Children) == 0 {
		return n.Width
	}
	if n.Arrangement == Vertical || t.HasLevelMarkup(id) {
		return gomath.Max(n.Width, t.WidthForVerticalArrangement(id))
	}
	return gomath.Max(n.Width, unitWidth(t.childWidths(id), n.Symmetry))
}

// WidthForVerticalArrangement returns the width required by the widest
// level in the markup of a node.
func (t *Tree) WidthForVerticalArrangement(id NodeID) float64 {
	var width float64
	for _, childID := range t.Children(id) {
		width = gomath.Max(width, t.MarkupWidth(childID))
	}
	return width
}

func (t *Tree) childWidths(id NodeID) []float64 {
	children := t.Children(id)
	widths := make([]float64, len(children))
	for i, childID := range children {
		widths[i] = t.MarkupWidth(childID)
	}
	return widths
}

// unitWidth is the width of one repeat of the markup. With symmetry the
// sequence is walked forward and then mirrored back.
func unitWidth(widths []float64, symmetry Symmetry) float64 {
	sum := math.Sum(widths)
	if len(widths) < 2 {
		return sum
	}
	switch symmetry {
	case MiddleOfLast:
		return 2*sum - widths[len(widths)-1]
	case RightmostOfLast:
		return 2 * sum
	}
	return sum
}
