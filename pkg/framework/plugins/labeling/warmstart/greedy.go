// Package warmstart builds greedy first-fit labelings used to seed the
// initial population of the genetic engine.
//
// Each labeling visits the free vertices in some order and gives every vertex
// the smallest label that keeps it clear of its already labeled first- and
// second-order neighbors. Fixed vertices count as labeled from the start.
// When no label is clear, the label with the fewest violations wins, ties
// going to the smaller label. The first order sorts vertices by descending
// degree (largest first); the others are random permutations, so the seeds
// differ from one another.
package warmstart

import (
	"cmp"
	"slices"

	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// Greedy returns count evaluated labelings.
func Greedy(eval *constraints.Evaluator, r framework.LabelRange, count int, rng *rand.Rand) []*framework.Labeling {
	if count <= 0 {
		return nil
	}
	g := eval.Graph()
	order := slices.Clone(g.FreeVertices())
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(g.Degree(b), g.Degree(a))
	})

	out := make([]*framework.Labeling, 0, count)
	for i := 0; i < count; i++ {
		if i > 0 {
			rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
		}
		l := FirstFit(eval, r, order)
		eval.Evaluate(l)
		out = append(out, l)
	}
	return out
}

// FirstFit labels the free vertices of the evaluator's graph in order. The
// cached metrics of the result are not filled.
func FirstFit(eval *constraints.Evaluator, r framework.LabelRange, order []int) *framework.Labeling {
	g := eval.Graph()
	l := framework.NewLabeling(g.VertexCount())
	assigned := make([]bool, g.VertexCount())
	for v := range l.Labels {
		if label, fixed := g.Fixed(v); fixed {
			l.Labels[v] = label
			assigned[v] = true
		}
	}

	for _, v := range order {
		if assigned[v] {
			continue
		}
		bestLabel, bestViolations := r.Min, -1
		for label := r.Min; label <= r.Max; label++ {
			n := violations(eval, l.Labels, assigned, v, label)
			if bestViolations < 0 || n < bestViolations {
				bestLabel, bestViolations = label, n
			}
			if n == 0 {
				break
			}
		}
		l.Labels[v] = bestLabel
		assigned[v] = true
	}
	return l
}

func violations(eval *constraints.Evaluator, labels []int, assigned []bool, v, label int) int {
	cfg := eval.Config()
	idx := eval.Index()
	n := 0
	for _, u := range idx.First(v) {
		if assigned[u] && abs(label-labels[u]) < cfg.H {
			n++
		}
	}
	for _, u := range idx.Second(v) {
		if assigned[u] && abs(label-labels[u]) < cfg.K {
			n++
		}
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
