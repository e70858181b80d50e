package algorithms

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// TournamentRounds returns the number of draws for a tournament over a
// population of size individuals: ceil(size·fraction), at least one.
func TournamentRounds(size int, fraction float64) int {
	return max(int(math.Ceil(float64(size)*fraction)), 1)
}

// TournamentSelect draws rounds uniformly random individuals, with
// replacement, and returns the fittest. Ties keep the earlier draw.
func TournamentSelect(population []*framework.Labeling, rounds int, rng *rand.Rand) *framework.Labeling {
	best := population[rng.Intn(len(population))]
	for i := 1; i < rounds; i++ {
		contestant := population[rng.Intn(len(population))]
		if contestant.Fitness > best.Fitness {
			best = contestant
		}
	}
	return best
}
