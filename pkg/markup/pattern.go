package markup

import (
	"sort"
	"strconv"
	"strings"
)

// Pattern counts the terminal item classes in the markup of one level.
// It is the key matched against pattern-specific facade textures.
type Pattern map[string]int

// NewPattern computes the histogram over the direct markup of a node.
func NewPattern(t *Tree, id NodeID) Pattern {
	p := make(Pattern)
	for _, childID := range t.Children(id) {
		child := t.Node(childID)
		if child.Kind.IsTerminal() {
			p[child.ClassName()]++
		}
	}
	return p
}

// Signature returns a canonical key such as "Door:1,Window:3".
// Classes with a zero count are left out.
func (p Pattern) Signature() string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p[k]))
	}
	return b.String()
}
