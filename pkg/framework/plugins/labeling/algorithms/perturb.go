package algorithms

import (
	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// perturbationTarget picks the vertex a mutation or annealing move relabels:
// a random conflicting free vertex when there is one, otherwise a random free
// vertex. It reports false when every vertex is fixed.
func perturbationTarget(eval *constraints.Evaluator, labels []int, rng *rand.Rand) (int, bool) {
	if conflicting := eval.ConflictingFree(labels); len(conflicting) > 0 {
		return conflicting[rng.Intn(len(conflicting))], true
	}
	free := eval.Graph().FreeVertices()
	if len(free) == 0 {
		return 0, false
	}
	return free[rng.Intn(len(free))], true
}

// perturb relabels one vertex of l with a random label from r. The cached
// metrics of l are left stale.
func perturb(eval *constraints.Evaluator, l *framework.Labeling, r framework.LabelRange, rng *rand.Rand) bool {
	v, ok := perturbationTarget(eval, l.Labels, rng)
	if !ok {
		return false
	}
	l.Labels[v] = r.Random(rng)
	return true
}

func newPopulation(eval *constraints.Evaluator, size int, r framework.LabelRange, rng *rand.Rand) []*framework.Labeling {
	g := eval.Graph()
	pop := make([]*framework.Labeling, size)
	for i := range pop {
		pop[i] = framework.NewLabeling(g.VertexCount())
		pop[i].Randomize(g, r, rng)
		eval.Evaluate(pop[i])
	}
	return pop
}

func fittest(pop []*framework.Labeling) *framework.Labeling {
	best := pop[0]
	for _, l := range pop[1:] {
		if l.Fitness > best.Fitness {
			best = l
		}
	}
	return best
}

func validateLabelRange(r framework.LabelRange) error {
	if r.Size() < 1 {
		return &framework.ConfigError{Err: framework.ErrEmptyLabelRange}
	}
	return nil
}
