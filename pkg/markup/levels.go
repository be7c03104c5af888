package markup

import (
	"sort"

	"github.com/Faultbox/facadegen/pkg/math"
)

// LevelHeights holds the level heights of a building footprint in meters.
type LevelHeights struct {
	Basement  float64         `yaml:"basement"`
	Ground    float64         `yaml:"ground"`
	Level     float64         `yaml:"level"`
	Overrides map[int]float64 `yaml:"overrides"`
}

// LevelHeight returns the height of a single level.
func (h LevelHeights) LevelHeight(index int) float64 {
	if v, ok := h.Overrides[index]; ok {
		return v
	}
	if index == 0 {
		return h.Ground
	}
	return h.Level
}

// Height returns the total height of the levels index1..index2 inclusive.
func (h LevelHeights) Height(index1, index2 int) float64 {
	var total float64
	for i := index1; i <= index2; i++ {
		total += h.LevelHeight(i)
	}
	return total
}

// Footprint carries the vertical extent of a building or building part.
type Footprint struct {
	// MinHeight is non-zero for building parts raised above the ground;
	// such parts have no basement.
	MinHeight float64 `yaml:"min_height"`
	// MinLevel is the lowest level rendered by the part.
	MinLevel  int          `yaml:"min_level"`
	NumLevels int          `yaml:"num_levels"`
	Heights   LevelHeights `yaml:"heights"`
}

// LevelGroup is a contiguous run of levels rendered as one strip.
type LevelGroup struct {
	Index1, Index2 int
	SingleLevel    bool
	Item           NodeID
}

// LevelGroups lists the strips of a vertically arranged node, bottom to top.
type LevelGroups struct {
	Basement        *LevelGroup
	Groups          []LevelGroup
	NumActiveGroups int
}

// Last returns the topmost active group.
func (lg *LevelGroups) Last() *LevelGroup {
	if lg.NumActiveGroups == 0 {
		return nil
	}
	return &lg.Groups[lg.NumActiveGroups-1]
}

// LevelGroups builds the level groups of a node whose markup consists of
// levels. Level ranges are resolved against numLevels; levels entirely
// above the building are inactive and dropped.
func (t *Tree) LevelGroups(id NodeID, numLevels int) LevelGroups {
	var lg LevelGroups
	for _, childID := range t.Children(id) {
		child := t.Node(childID)
		switch child.Kind {
		case KindBasement:
			lg.Basement = &LevelGroup{Index1: -1, Index2: -1, SingleLevel: true, Item: childID}
		case KindLevel:
			i1 := resolveLevelIndex(child.Levels[0], numLevels)
			i2 := resolveLevelIndex(child.Levels[1], numLevels)
			if i2 < i1 {
				i1, i2 = i2, i1
			}
			if numLevels > 0 {
				if i1 >= numLevels {
					continue
				}
				i2 = math.Clamp(i2, i1, numLevels-1)
			}
			lg.Groups = append(lg.Groups, LevelGroup{
				Index1:      i1,
				Index2:      i2,
				SingleLevel: i1 == i2,
				Item:        childID,
			})
		}
	}
	sort.SliceStable(lg.Groups, func(i, j int) bool {
		return lg.Groups[i].Index1 < lg.Groups[j].Index1
	})
	lg.NumActiveGroups = len(lg.Groups)
	return lg
}

func resolveLevelIndex(i, numLevels int) int {
	if i < 0 {
		i += numLevels
		if i < 0 {
			i = 0
		}
	}
	return i
}
