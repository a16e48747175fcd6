package annot

import (
	"math"
	"slices"
	"sort"

	"github.com/huangsam/hotelpulse/schema"
)

// Separate pushes apart labels that share an x column and sit too close vertically.
// Walking each column in ascending y, a label closer than minGap*|prev.Y| to the
// previous one moves to prev.Y + minGap*|prev.Y|. Order and indices are preserved.
// A non-positive minGap returns an unchanged copy.
func Separate(annotations []schema.Annotation, minGap float64) []schema.Annotation {
	out := slices.Clone(annotations)
	if minGap <= 0 || len(out) < 2 {
		return out
	}

	columns := make(map[float64][]int)
	var keys []float64
	for i, a := range out {
		if _, ok := columns[a.X]; !ok {
			keys = append(keys, a.X)
		}
		columns[a.X] = append(columns[a.X], i)
	}

	for _, x := range keys {
		members := columns[x]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return out[members[i]].Y < out[members[j]].Y
		})
		for k := 1; k < len(members); k++ {
			prev := out[members[k-1]]
			curr := &out[members[k]]
			gap := minGap * math.Abs(prev.Y)
			if curr.Y-prev.Y < gap {
				curr.Y = prev.Y + gap
			}
		}
	}
	return out
}
