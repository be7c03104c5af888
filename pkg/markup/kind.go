// Package markup models the structural markup of building facades: an
// arena-backed tree of facades, levels, divisions and terminal items.
package markup

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a markup node.
type Kind uint8

// Node kinds. Kinds after KindDiv are terminal items.
const (
	KindFacade Kind = iota
	KindLevel
	KindBasement
	KindDiv
	KindWindow
	KindDoor
	KindBalcony
	KindWall
)

var kindNames = [...]string{
	KindFacade:   "Facade",
	KindLevel:    "Level",
	KindBasement: "Basement",
	KindDiv:      "Div",
	KindWindow:   "Window",
	KindDoor:     "Door",
	KindBalcony:  "Balcony",
	KindWall:     "Wall",
}

// String returns the class name of the kind, e.g. "Window".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Part returns the lower-case building part name used for catalog lookups.
func (k Kind) Part() string {
	return strings.ToLower(k.String())
}

// IsLevel returns true for nodes stacked along the vertical axis.
func (k Kind) IsLevel() bool {
	return k == KindLevel || k == KindBasement
}

// IsContainer returns true for nodes whose markup is subdivided further.
func (k Kind) IsContainer() bool {
	return k <= KindDiv
}

// IsTerminal returns true for leaf items that emit a single face.
func (k Kind) IsTerminal() bool {
	return k > KindDiv && int(k) < len(kindNames)
}

// ParseKind converts a case-insensitive class name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Arrangement is the axis along which a node's markup is laid out.
type Arrangement uint8

const (
	Horizontal Arrangement = iota
	Vertical
)

// String returns the arrangement name.
func (a Arrangement) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseArrangement converts a name to an Arrangement. Empty means Horizontal.
func ParseArrangement(s string) (Arrangement, error) {
	switch strings.ToLower(s) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown arrangement %q", s)
}

// Symmetry is the mirroring policy for repeated markup.
type Symmetry uint8

const (
	NoSymmetry Symmetry = iota
	// MiddleOfLast mirrors around the last item, which appears once.
	MiddleOfLast
	// RightmostOfLast mirrors after the last item, which appears twice.
	RightmostOfLast
)

// String returns the symmetry name.
func (s Symmetry) String() string {
	switch s {
	case MiddleOfLast:
		return "middle-of-last"
	case RightmostOfLast:
		return "rightmost-of-last"
	}
	return "none"
}

// ParseSymmetry converts a name to a Symmetry. Empty means NoSymmetry.
func ParseSymmetry(s string) (Symmetry, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return NoSymmetry, nil
	case "middle-of-last", "middleoflast":
		return MiddleOfLast, nil
	case "rightmost-of-last", "rightmostoflast":
		return RightmostOfLast, nil
	}
	return 0, fmt.Errorf("unknown symmetry %q", s)
}
