package algorithms

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

const (
	// GeneticName identifies the genetic engine in logs and results.
	GeneticName = "GA"

	// DefaultTournamentFraction sizes tournaments relative to the island.
	DefaultTournamentFraction = 0.05
)

// GeneticConfig holds configuration parameters for GeneticSearch.
type GeneticConfig struct {
	Islands        int
	IslandSize     int
	Elites         int
	MutationChance float64
	MaxGenerations int

	// TournamentFraction defaults to DefaultTournamentFraction when zero.
	TournamentFraction float64
	// Crossover defaults to FitnessProportionalCrossover when nil.
	Crossover CrossoverFunc
	// Parallel advances islands concurrently. Results do not depend on it.
	Parallel bool
	// Seeds replace random initial individuals, dealt round-robin across
	// islands. Seeds beyond the total population are ignored.
	Seeds []*framework.Labeling
}

func (c GeneticConfig) validate() error {
	switch {
	case c.Islands < 1:
		return fmt.Errorf("islands must be at least 1, got %d", c.Islands)
	case c.IslandSize < 1:
		return fmt.Errorf("island size must be at least 1, got %d", c.IslandSize)
	case c.Elites < 0 || c.Elites > c.IslandSize:
		return fmt.Errorf("elites must be in [0,%d], got %d", c.IslandSize, c.Elites)
	case c.MutationChance < 0 || c.MutationChance > 1:
		return fmt.Errorf("mutation chance must be in [0,1], got %v", c.MutationChance)
	case c.MaxGenerations < 1:
		return fmt.Errorf("max generations must be at least 1, got %d", c.MaxGenerations)
	case c.TournamentFraction < 0 || c.TournamentFraction > 1:
		return fmt.Errorf("tournament fraction must be in [0,1], got %v", c.TournamentFraction)
	}
	return nil
}

// island is an isolated sub-population. Only the goroutine advancing it
// touches its buffers and generator.
type island struct {
	current []*framework.Labeling
	next    []*framework.Labeling
	rng     *rand.Rand
	best    *framework.Labeling
}

// GeneticSearch evolves islands of labelings with elitism, tournament
// selection, crossover and mutation. Islands never exchange individuals.
type GeneticSearch struct {
	cfg       GeneticConfig
	eval      *constraints.Evaluator
	labels    framework.LabelRange
	crossover CrossoverFunc
	rounds    int

	islands    []*island
	generation int
	best       *framework.Labeling
	history    *FitnessHistory
}

// NewGeneticSearch builds and evaluates a random initial population, then
// swaps in cfg.Seeds. Every island gets its own stream derived from rng in
// island order, so seeding does not shift the random individuals.
func NewGeneticSearch(cfg GeneticConfig, eval *constraints.Evaluator, r framework.LabelRange, rng *rand.Rand) (*GeneticSearch, error) {
	if cfg.TournamentFraction == 0 {
		cfg.TournamentFraction = DefaultTournamentFraction
	}
	if err := cfg.validate(); err != nil {
		return nil, &framework.ConfigError{Err: err}
	}
	if err := validateLabelRange(r); err != nil {
		return nil, err
	}
	crossover := cfg.Crossover
	if crossover == nil {
		crossover = FitnessProportionalCrossover
	}

	s := &GeneticSearch{
		cfg:       cfg,
		eval:      eval,
		labels:    r,
		crossover: crossover,
		rounds:    TournamentRounds(cfg.IslandSize, cfg.TournamentFraction),
		islands:   make([]*island, cfg.Islands),
		history:   NewFitnessHistory(cfg.MaxGenerations),
	}
	n := eval.Graph().VertexCount()
	for i := range s.islands {
		isl := &island{rng: DeriveRand(rng, uint64(i))}
		isl.current = newPopulation(eval, cfg.IslandSize, r, isl.rng)
		isl.next = make([]*framework.Labeling, cfg.IslandSize)
		for j := range isl.next {
			isl.next[j] = framework.NewLabeling(n)
		}
		s.islands[i] = isl
	}
	for k, seed := range cfg.Seeds {
		slot := k / cfg.Islands
		if slot >= cfg.IslandSize {
			break
		}
		if len(seed.Labels) != n {
			return nil, &framework.ConfigError{Err: fmt.Errorf("seed %d has %d labels, graph has %d vertices", k, len(seed.Labels), n)}
		}
		target := s.islands[k%cfg.Islands].current[slot]
		target.CopyFrom(seed)
		eval.Evaluate(target)
	}
	for _, isl := range s.islands {
		isl.best = fittest(isl.current)
	}
	s.reduce()
	return s, nil
}

// Step advances every island by one generation.
func (s *GeneticSearch) Step() {
	if s.cfg.Parallel && len(s.islands) > 1 {
		var g errgroup.Group
		for _, isl := range s.islands {
			isl := isl
			g.Go(func() error {
				s.advance(isl)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, isl := range s.islands {
			s.advance(isl)
		}
	}
	s.generation++
	s.reduce()
}

// reduce merges the island winners into the best-ever labeling in island
// order and records the history slot of the current generation.
func (s *GeneticSearch) reduce() {
	for _, isl := range s.islands {
		if s.best == nil {
			s.best = isl.best.Clone()
			continue
		}
		if isl.best.Fitness > s.best.Fitness {
			s.best.CopyFrom(isl.best)
		}
	}
	s.history.Observe(s.generation, s.best.Fitness)
}

// advance builds the next buffer of isl from the current one and swaps them.
func (s *GeneticSearch) advance(isl *island) {
	slices.SortStableFunc(isl.current, func(a, b *framework.Labeling) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})

	for i := 0; i < s.cfg.Elites; i++ {
		isl.next[i].CopyFrom(isl.current[i])
	}
	for i := s.cfg.Elites; i < len(isl.next); i++ {
		parent1 := TournamentSelect(isl.current, s.rounds, isl.rng)
		parent2 := TournamentSelect(isl.current, s.rounds, isl.rng)

		child := isl.next[i]
		s.crossover(parent1, parent2, child, isl.rng)
		if isl.rng.Float64() < s.cfg.MutationChance {
			perturb(s.eval, child, s.labels, isl.rng)
		}
		s.eval.Evaluate(child)
	}

	isl.current, isl.next = isl.next, isl.current
	isl.best = fittest(isl.current)
}

// Done reports whether the generation limit has been reached.
func (s *GeneticSearch) Done() bool { return s.generation >= s.cfg.MaxGenerations }

// Steps returns the number of completed generations.
func (s *GeneticSearch) Steps() int { return s.generation }

// Best returns the best labeling seen so far. It must not be modified.
func (s *GeneticSearch) Best() *framework.Labeling { return s.best }

// History returns the per-generation best fitness.
func (s *GeneticSearch) History() *FitnessHistory { return s.history }

// Population returns the current individuals of every island. The labelings
// are owned by the search and must not be modified.
func (s *GeneticSearch) Population() [][]*framework.Labeling {
	out := make([][]*framework.Labeling, len(s.islands))
	for i, isl := range s.islands {
		out[i] = isl.current
	}
	return out
}
