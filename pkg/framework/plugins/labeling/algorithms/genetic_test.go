package algorithms_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

func runGenetic(t *testing.T, s *algorithms.GeneticSearch) {
	t.Helper()
	for !s.Done() {
		s.Step()
	}
}

func TestGeneticPreservesBackbone(t *testing.T) {
	backbone := []int{0, 5, 0, 0, 1, 0, 0, 9}
	eval, r := backboneEvaluator(t, 8, pathEdges(8), backbone, 2, 1, 10)

	config := algorithms.GeneticConfig{
		Islands:        3,
		IslandSize:     12,
		Elites:         2,
		MutationChance: 0.8,
		MaxGenerations: 40,
	}
	s, err := algorithms.NewGeneticSearch(config, eval, r, algorithms.NewRand(7))
	if err != nil {
		t.Fatalf("NewGeneticSearch: %v", err)
	}

	for !s.Done() {
		s.Step()
		for _, pop := range s.Population() {
			for _, l := range pop {
				checkBackbone(t, eval.Graph(), l)
			}
		}
	}
	checkBackbone(t, eval.Graph(), s.Best())

	if got := s.Steps(); got != config.MaxGenerations {
		t.Errorf("Expected %d generations, got %d", config.MaxGenerations, got)
	}
	if got := len(s.History().Values()); got != config.MaxGenerations+1 {
		t.Errorf("Expected %d history slots, got %d", config.MaxGenerations+1, got)
	}
	checkMonotone(t, s.History().Values())
	if s.History().Best() != s.Best().Fitness {
		t.Errorf("Expected history best %v to match best labeling %v", s.History().Best(), s.Best().Fitness)
	}
}

func TestGeneticTriangleConverges(t *testing.T) {
	eval, r := backboneEvaluator(t, 3, triangleEdges, nil, 1, 1, 3)

	s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
		Islands:        2,
		IslandSize:     20,
		Elites:         2,
		MutationChance: 0.5,
		MaxGenerations: 100,
	}, eval, r, algorithms.NewRand(1))
	if err != nil {
		t.Fatalf("NewGeneticSearch: %v", err)
	}
	runGenetic(t, s)

	best := s.Best()
	if !best.Correct || best.ConflictCount != 0 {
		t.Errorf("Expected a correct labeling, got %+v", best)
	}
}

func TestGeneticIsolatedVertexIsCorrectAtInit(t *testing.T) {
	eval, r := backboneEvaluator(t, 1, nil, nil, 3, 2, 4)

	s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
		Islands:        1,
		IslandSize:     1,
		MaxGenerations: 1,
	}, eval, r, algorithms.NewRand(3))
	if err != nil {
		t.Fatalf("NewGeneticSearch: %v", err)
	}
	if best := s.Best(); !best.Correct || best.ConflictCount != 0 {
		t.Errorf("Expected a correct labeling at initialization, got %+v", best)
	}
}

func TestGeneticFullyFixedGraph(t *testing.T) {
	eval, r := backboneEvaluator(t, 3, pathEdges(3), []int{1, 3, 5}, 2, 2, 6)

	s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
		Islands:        1,
		IslandSize:     4,
		MutationChance: 1,
		MaxGenerations: 5,
	}, eval, r, algorithms.NewRand(5))
	if err != nil {
		t.Fatalf("NewGeneticSearch: %v", err)
	}
	runGenetic(t, s)
	if diff := cmp.Diff([]int{1, 3, 5}, s.Best().Labels); diff != "" {
		t.Errorf("Best labeling mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneticDeterminism(t *testing.T) {
	eval, r := backboneEvaluator(t, 10, pathEdges(10), nil, 2, 1, 6)

	run := func(parallel bool) (*framework.Labeling, []float64) {
		s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
			Islands:        4,
			IslandSize:     10,
			Elites:         1,
			MutationChance: 0.3,
			MaxGenerations: 25,
			Parallel:       parallel,
		}, eval, r, algorithms.NewRand(42))
		if err != nil {
			t.Fatalf("NewGeneticSearch: %v", err)
		}
		runGenetic(t, s)
		return s.Best(), s.History().Values()
	}

	testCases := []struct {
		name     string
		parallel bool
	}{
		{name: "SameSeed", parallel: false},
		{name: "ParallelMatchesSequential", parallel: true},
	}
	wantBest, wantHistory := run(false)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			best, history := run(tc.parallel)
			if diff := cmp.Diff(wantBest, best); diff != "" {
				t.Errorf("Best mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(wantHistory, history); diff != "" {
				t.Errorf("History mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewGeneticSearchValidation(t *testing.T) {
	eval, r := backboneEvaluator(t, 2, pathEdges(2), nil, 1, 1, 3)
	valid := algorithms.GeneticConfig{Islands: 1, IslandSize: 4, Elites: 1, MutationChance: 0.1, MaxGenerations: 1}

	testCases := []struct {
		name   string
		mutate func(c *algorithms.GeneticConfig)
	}{
		{name: "NoIslands", mutate: func(c *algorithms.GeneticConfig) { c.Islands = 0 }},
		{name: "EmptyIsland", mutate: func(c *algorithms.GeneticConfig) { c.IslandSize = 0 }},
		{name: "TooManyElites", mutate: func(c *algorithms.GeneticConfig) { c.Elites = 5 }},
		{name: "MutationAboveOne", mutate: func(c *algorithms.GeneticConfig) { c.MutationChance = 1.5 }},
		{name: "NoGenerations", mutate: func(c *algorithms.GeneticConfig) { c.MaxGenerations = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := valid
			tc.mutate(&config)
			_, err := algorithms.NewGeneticSearch(config, eval, r, algorithms.NewRand(1))
			if !errors.Is(err, framework.ErrConfig) {
				t.Errorf("Expected a config error, got %v", err)
			}
		})
	}

	_, err := algorithms.NewGeneticSearch(valid, eval, framework.LabelRange{Min: 1, Max: 0}, algorithms.NewRand(1))
	if !errors.Is(err, framework.ErrEmptyLabelRange) {
		t.Errorf("Expected ErrEmptyLabelRange, got %v", err)
	}
}

func TestGeneticSeeds(t *testing.T) {
	eval, r := backboneEvaluator(t, 3, triangleEdges, nil, 1, 1, 3)
	config := algorithms.GeneticConfig{
		Islands:        2,
		IslandSize:     5,
		Elites:         1,
		MutationChance: 0.1,
		MaxGenerations: 1,
		Seeds:          []*framework.Labeling{{Labels: []int{1, 2, 3}}},
	}
	s, err := algorithms.NewGeneticSearch(config, eval, r, algorithms.NewRand(3))
	if err != nil {
		t.Fatalf("NewGeneticSearch: %v", err)
	}
	if !s.Best().Correct {
		t.Errorf("Expected the seeded labeling to be the initial best, got %+v", s.Best())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, s.Population()[0][0].Labels); diff != "" {
		t.Errorf("Seed not placed in island 0 (-want +got):\n%s", diff)
	}

	config.Seeds = []*framework.Labeling{{Labels: []int{1, 2}}}
	if _, err := algorithms.NewGeneticSearch(config, eval, r, algorithms.NewRand(3)); !errors.Is(err, framework.ErrConfig) {
		t.Errorf("Expected a config error for a short seed, got %v", err)
	}
}

func TestGeneticElitesSurviveUnchanged(t *testing.T) {
	eval, r := backboneEvaluator(t, 8, pathEdges(8), []int{2, 0, 0, 0, 0, 0, 0, 9}, 2, 1, 9)

	testCases := []struct {
		name     string
		elites   int
		parallel bool
	}{
		{name: "NoElites", elites: 0},
		{name: "OneElite", elites: 1},
		{name: "SeveralElites", elites: 4},
		{name: "WholeIsland", elites: 10},
		{name: "Parallel", elites: 3, parallel: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
				Islands:        3,
				IslandSize:     10,
				Elites:         tc.elites,
				MutationChance: 1,
				MaxGenerations: 5,
				Parallel:       tc.parallel,
			}, eval, r, algorithms.NewRand(21))
			if err != nil {
				t.Fatalf("NewGeneticSearch: %v", err)
			}
			for !s.Done() {
				want := make([][]*framework.Labeling, 0, 3)
				for _, pop := range s.Population() {
					ranked := make([]*framework.Labeling, len(pop))
					for i, l := range pop {
						ranked[i] = l.Clone()
					}
					slices.SortStableFunc(ranked, func(a, b *framework.Labeling) int {
						switch {
						case a.Fitness > b.Fitness:
							return -1
						case a.Fitness < b.Fitness:
							return 1
						}
						return 0
					})
					want = append(want, ranked[:tc.elites])
				}

				s.Step()

				for i, pop := range s.Population() {
					if diff := cmp.Diff(want[i], pop[:tc.elites]); diff != "" {
						t.Fatalf("Generation %d island %d elites changed (-want +got):\n%s", s.Steps(), i, diff)
					}
				}
			}
		})
	}
}

// copyParent makes every child a copy of its first parent, so the only
// change between generations is the mutation.
func copyParent(parent1, _, child *framework.Labeling, _ *rand.Rand) {
	child.CopyFrom(parent1)
}

func TestGeneticMutationTargetsConflictingVertices(t *testing.T) {
	testCases := []struct {
		name     string
		backbone []int
		labels   []int
		movable  []int
	}{
		{
			name:     "OneConflictingFreeVertex",
			backbone: []int{1, 0, 0, 0, 0},
			labels:   []int{1, 2, 5, 8, 11},
			movable:  []int{1},
		},
		{
			name:     "ConflictNextToFixedTail",
			backbone: []int{1, 0, 0, 0, 11},
			labels:   []int{1, 4, 7, 10, 11},
			movable:  []int{3},
		},
		{
			name:     "NoConflictsAnyFreeVertex",
			backbone: []int{1, 0, 0, 0, 0},
			labels:   []int{1, 3, 5, 7, 9},
			movable:  []int{1, 2, 3, 4},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eval, r := backboneEvaluator(t, 5, pathEdges(5), tc.backbone, 2, 1, 12)
			moved := map[int]bool{}
			for seed := uint64(0); seed < 200; seed++ {
				s, err := algorithms.NewGeneticSearch(algorithms.GeneticConfig{
					Islands:        1,
					IslandSize:     1,
					MutationChance: 1,
					MaxGenerations: 1,
					Crossover:      copyParent,
					Seeds:          []*framework.Labeling{{Labels: tc.labels}},
				}, eval, r, algorithms.NewRand(seed))
				if err != nil {
					t.Fatalf("NewGeneticSearch: %v", err)
				}
				s.Step()

				got := s.Population()[0][0].Labels
				for v := range got {
					if got[v] == tc.labels[v] {
						continue
					}
					if !slices.Contains(tc.movable, v) {
						t.Fatalf("Seed %d relabeled vertex %d, expected only %v to move: %v", seed, v, tc.movable, got)
					}
					moved[v] = true
				}
			}
			for _, v := range tc.movable {
				if !moved[v] {
					t.Errorf("Vertex %d was never relabeled in 200 runs", v)
				}
			}
		})
	}
}
