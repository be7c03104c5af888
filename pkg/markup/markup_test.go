package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/facadegen/pkg/math"
)

// newDivs builds a facade with one horizontal div holding windows of the
// given widths.
func newDivs(widths []float64, symmetry Symmetry, repeat bool) (*Tree, NodeID) {
	t := NewTree()
	root := t.Add(NoParent, Node{Kind: KindFacade, Width: 100})
	div := t.Add(root, Node{Kind: KindDiv, Symmetry: symmetry, Repeat: repeat})
	for _, w := range widths {
		t.Add(div, Node{Kind: KindWindow, Width: w})
	}
	return t, div
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"facade", KindFacade},
		{"Level", KindLevel},
		{"BASEMENT", KindBasement},
		{"div", KindDiv},
		{"window", KindWindow},
		{"door", KindDoor},
		{"balcony", KindBalcony},
		{"wall", KindWall},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseKind("chimney"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKindPredicates(t *testing.T) {
	if !KindBasement.IsLevel() || !KindLevel.IsLevel() || KindDiv.IsLevel() {
		t.Error("IsLevel() mismatch")
	}
	if KindDiv.IsTerminal() || !KindWindow.IsTerminal() || !KindWall.IsTerminal() {
		t.Error("IsTerminal() mismatch")
	}
	if KindDoor.Part() != "door" {
		t.Errorf("KindDoor.Part() = %q, want door", KindDoor.Part())
	}
}

func TestParseSymmetry(t *testing.T) {
	tests := map[string]Symmetry{
		"":                  NoSymmetry,
		"none":              NoSymmetry,
		"middle-of-last":    MiddleOfLast,
		"RightmostOfLast":   RightmostOfLast,
		"rightmost-of-last": RightmostOfLast,
	}
	for in, want := range tests {
		got, err := ParseSymmetry(in)
		if err != nil {
			t.Fatalf("ParseSymmetry(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSymmetry(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseSymmetry("diagonal"); err == nil {
		t.Error("expected error for unknown symmetry")
	}
}

func TestLevelHeights(t *testing.T) {
	h := LevelHeights{Basement: 2, Ground: 4, Level: 3, Overrides: map[int]float64{2: 5}}
	if got := h.LevelHeight(0); got != 4 {
		t.Errorf("LevelHeight(0) = %v, want 4", got)
	}
	if got := h.LevelHeight(2); got != 5 {
		t.Errorf("LevelHeight(2) = %v, want 5", got)
	}
	if got := h.Height(0, 3); got != 4+3+5+3 {
		t.Errorf("Height(0, 3) = %v, want 15", got)
	}
}

func TestLevelGroups(t *testing.T) {
	tr := NewTree()
	root := tr.Add(NoParent, Node{Kind: KindFacade})
	top := tr.Add(root, Node{Kind: KindLevel, Levels: [2]int{1, -1}})
	basement := tr.Add(root, Node{Kind: KindBasement})
	ground := tr.Add(root, Node{Kind: KindLevel})
	tr.Add(root, Node{Kind: KindLevel, Levels: [2]int{9, 9}})

	lg := tr.LevelGroups(root, 4)
	if lg.Basement == nil || lg.Basement.Item != basement {
		t.Fatalf("expected basement group for node %d, got %+v", basement, lg.Basement)
	}
	if lg.NumActiveGroups != 2 {
		t.Fatalf("expected 2 active groups, got %d", lg.NumActiveGroups)
	}
	if g := lg.Groups[0]; g.Item != ground || !g.SingleLevel || g.Index1 != 0 {
		t.Errorf("unexpected ground group %+v", g)
	}
	if g := lg.Groups[1]; g.Item != top || g.SingleLevel || g.Index1 != 1 || g.Index2 != 3 {
		t.Errorf("unexpected upper group %+v", g)
	}
	if lg.Last().Item != top {
		t.Errorf("Last() = %d, want %d", lg.Last().Item, top)
	}
}

func TestPatternSignature(t *testing.T) {
	tr := NewTree()
	level := tr.Add(NoParent, Node{Kind: KindLevel})
	tr.Add(level, Node{Kind: KindWindow})
	tr.Add(level, Node{Kind: KindDoor})
	tr.Add(level, Node{Kind: KindWindow})
	tr.Add(level, Node{Kind: KindDiv})
	tr.Add(level, Node{Kind: KindBalcony, Class: "FrenchBalcony"})

	p := NewPattern(tr, level)
	if got, want := p.Signature(), "Door:1,FrenchBalcony:1,Window:2"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}

	p["Door"] = 0
	if got, want := p.Signature(), "FrenchBalcony:1,Window:2"; got != want {
		t.Errorf("Signature() with zero count = %q, want %q", got, want)
	}
}

func TestDivide_Overflow(t *testing.T) {
	tr, div := newDivs([]float64{4, 4, 4}, NoSymmetry, false)
	_, err := DefaultDivider{}.Divide(tr, div, 10)
	if !errors.Is(err, ErrLayoutOverflow) {
		t.Fatalf("expected ErrLayoutOverflow, got %v", err)
	}
}

func TestDivide_NaturalWidths(t *testing.T) {
	tr, div := newDivs([]float64{3, 3, 4}, NoSymmetry, false)
	d, err := DefaultDivider{}.Divide(tr, div, 10)
	if err != nil {
		t.Fatalf("Divide failed: %v", err)
	}
	if d.NumRepeats != 1 {
		t.Errorf("expected 1 repeat, got %d", d.NumRepeats)
	}
	want := []float64{3, 3, 4}
	for i := range want {
		if d.Widths[i] != want[i] {
			t.Errorf("width[%d] = %v, want %v", i, d.Widths[i], want[i])
		}
	}
}

func TestDivide_Repeat(t *testing.T) {
	tests := []struct {
		name     string
		symmetry Symmetry
		width    float64
		repeats  int
	}{
		// unit 3
		{"plain", NoSymmetry, 10, 3},
		// unit 1+2+1 = 4
		{"middle-of-last", MiddleOfLast, 10, 2},
		// unit 2*(1+2) = 6
		{"rightmost-of-last", RightmostOfLast, 13, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, div := newDivs([]float64{1, 2}, tt.symmetry, true)
			d, err := DefaultDivider{}.Divide(tr, div, tt.width)
			if err != nil {
				t.Fatalf("Divide failed: %v", err)
			}
			if d.NumRepeats != tt.repeats {
				t.Errorf("NumRepeats = %d, want %d", d.NumRepeats, tt.repeats)
			}
			// Stretched repeats fill the width exactly.
			total := float64(d.NumRepeats) * unitWidth(d.Widths, tt.symmetry)
			if !math.NearlyEqual(total, tt.width) {
				t.Errorf("repeated width = %v, want %v", total, tt.width)
			}
		})
	}
}

func TestWidthForVerticalArrangement(t *testing.T) {
	tr := NewTree()
	root := tr.Add(NoParent, Node{Kind: KindFacade, Width: 10})
	l0 := tr.Add(root, Node{Kind: KindLevel})
	tr.Add(l0, Node{Kind: KindDoor, Width: 2})
	tr.Add(l0, Node{Kind: KindWindow, Width: 1.5})
	l1 := tr.Add(root, Node{Kind: KindLevel, Levels: [2]int{1, 1}})
	tr.Add(l1, Node{Kind: KindWindow, Width: 1.5})
	tr.Add(l1, Node{Kind: KindWindow, Width: 1.5})
	tr.Add(l1, Node{Kind: KindWindow, Width: 1.5})

	if got := tr.WidthForVerticalArrangement(root); got != 4.5 {
		t.Errorf("WidthForVerticalArrangement() = %v, want 4.5", got)
	}
	if !tr.HasLevelMarkup(root) {
		t.Error("expected level markup")
	}
}

func TestDecode(t *testing.T) {
	src := `
buildings:
  - id: b1
    style: brick
    footprint:
      num_levels: 3
      heights: {basement: 2, ground: 3, level: 3}
    facades:
      - origin: [1, 2, 0]
        direction: [0, 1, 0]
        width: 10
        height: 11
        markup:
          - kind: basement
          - kind: level
            levels: [0]
            markup:
              - {kind: door, width: 2}
              - {kind: window, width: 1.5}
          - kind: level
            levels: [1, -1]
            symmetry: middle-of-last
            repeat: true
            markup:
              - {kind: window, width: 1.5}
              - {kind: wall, width: 1}
`
	buildings, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(buildings) != 1 {
		t.Fatalf("expected 1 building, got %d", len(buildings))
	}
	b := buildings[0]
	if b.Style != "brick" || b.Footprint.Heights.Ground != 3 || b.Footprint.NumLevels != 3 {
		t.Errorf("unexpected building header %+v", b)
	}
	if len(b.Facades) != 1 {
		t.Fatalf("expected 1 facade, got %d", len(b.Facades))
	}
	f := b.Facades[0]
	if f.Width != 10 || f.Height != 11 {
		t.Errorf("unexpected facade extent %vx%v", f.Width, f.Height)
	}
	corners := f.Corners()
	if corners[2] != (math.Vec3{X: 1, Y: 12, Z: 11}) {
		t.Errorf("top-right corner = %v", corners[2])
	}

	root := b.Tree.Node(f.Node)
	if root.Kind != KindFacade || len(root.Children) != 3 {
		t.Fatalf("unexpected facade node %+v", root)
	}
	upper := b.Tree.Node(root.Children[2])
	if upper.Symmetry != MiddleOfLast || !upper.Repeat || upper.Levels != [2]int{1, -1} {
		t.Errorf("unexpected upper level %+v", upper)
	}
	if ground := b.Tree.Node(root.Children[1]); ground.Levels != [2]int{0, 0} {
		t.Errorf("unexpected ground levels %v", ground.Levels)
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	src := `
buildings:
  - facades:
      - width: 5
        height: 5
        markup:
          - kind: gargoyle
`
	_, err := Decode(strings.NewReader(src))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}
