package constraints

import (
	"cmp"
	"math"
	"slices"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// Weight presets of the two shipped variants.
const (
	DensityConflictWeight   = 9
	DensityChromaticWeight  = 1
	BackboneConflictWeight  = 4
	BackboneChromaticWeight = 1
)

// DensityChromaticBound estimates an upper bound on the chromatic number from
// the edge density: round(V · max(h,k) · density), at least 1.
func DensityChromaticBound(g *framework.Graph, h, k int) int {
	bound := int(math.Round(float64(g.VertexCount()) * float64(max(h, k)) * g.Density()))
	return max(bound, 1)
}

// DensityPreset configures the variant without an explicit max label: labels
// are drawn from [0, bound) and the chromatic number counts distinct labels.
func DensityPreset(g *framework.Graph, h, k int) (Config, framework.LabelRange) {
	bound := DensityChromaticBound(g, h, k)
	return Config{
			H:               h,
			K:               k,
			Policy:          DistinctCount,
			ConflictWeight:  DensityConflictWeight,
			ChromaticWeight: DensityChromaticWeight,
			ChromaticBound:  bound,
		}, framework.LabelRange{
			Min: 0,
			Max: bound - 1,
		}
}

// BackbonePreset configures the max-label variant: labels are drawn from
// [1, maxLabel] and the chromatic number is the largest label used.
func BackbonePreset(h, k, maxLabel int) (Config, framework.LabelRange) {
	return Config{
			H:               h,
			K:               k,
			Policy:          MaxLabel,
			ConflictWeight:  BackboneConflictWeight,
			ChromaticWeight: BackboneChromaticWeight,
			ChromaticBound:  maxLabel,
		}, framework.LabelRange{
			Min: 1,
			Max: maxLabel,
		}
}

// CheckBackbone returns a warning listing fixed vertex pairs whose labels
// already violate h or k, or nil when the backbone is consistent.
func CheckBackbone(g *framework.Graph, idx *framework.NeighborIndex, h, k int) *framework.InfeasibleBackboneWarning {
	var pairs [][2]int
	for v := 0; v < g.VertexCount(); v++ {
		lv, fixed := g.Fixed(v)
		if !fixed {
			continue
		}
		check := func(neighbors []int, sep int) {
			for _, u := range neighbors {
				if u <= v {
					continue
				}
				if lu, ok := g.Fixed(u); ok && abs(lv-lu) < sep {
					pairs = append(pairs, [2]int{v, u})
				}
			}
		}
		check(idx.First(v), h)
		check(idx.Second(v), k)
	}
	if len(pairs) == 0 {
		return nil
	}
	// Triangles put a pair in both neighbor sets.
	slices.SortFunc(pairs, func(a, b [2]int) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	pairs = slices.Compact(pairs)
	return &framework.InfeasibleBackboneWarning{Pairs: pairs}
}
