package algorithms

import (
	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// CrossoverFunc writes a child built from two parents into child. Parents and
// child have the same length; the child's cached metrics are left stale.
type CrossoverFunc func(parent1, parent2, child *framework.Labeling, rng *rand.Rand)

// Crossover names accepted by CrossoverByName.
const (
	FitnessProportional = "FitnessProportional"
	Uniform             = "Uniform"
)

// CrossoverByName resolves a crossover operator. The empty name selects
// FitnessProportionalCrossover.
func CrossoverByName(name string) (CrossoverFunc, bool) {
	switch name {
	case "", FitnessProportional:
		return FitnessProportionalCrossover, true
	case Uniform:
		return UniformCrossover, true
	}
	return nil, false
}

// FitnessProportionalCrossover takes each gene from parent1 with probability
// f1/(f1+f2), otherwise from parent2. Two zero-fitness parents blend evenly.
func FitnessProportionalCrossover(p1, p2, child *framework.Labeling, rng *rand.Rand) {
	dominance := 0.5
	if total := p1.Fitness + p2.Fitness; total > 0 {
		dominance = p1.Fitness / total
	}
	blend(p1, p2, child, dominance, rng)
}

// UniformCrossover takes each gene from either parent with equal probability.
func UniformCrossover(p1, p2, child *framework.Labeling, rng *rand.Rand) {
	blend(p1, p2, child, 0.5, rng)
}

func blend(p1, p2, child *framework.Labeling, dominance float64, rng *rand.Rand) {
	for i := range child.Labels {
		if rng.Float64() < dominance {
			child.Labels[i] = p1.Labels[i]
		} else {
			child.Labels[i] = p2.Labels[i]
		}
	}
}
