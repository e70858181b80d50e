package algorithms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
)

func TestAnnealingPreservesBackbone(t *testing.T) {
	backbone := []int{3, 0, 0, 7, 0, 0}
	eval, r := backboneEvaluator(t, 6, pathEdges(6), backbone, 2, 1, 8)

	s, err := algorithms.NewAnnealingSearch(algorithms.AnnealingConfig{
		InitialTemperature: 1,
		CoolingFactor:      0.99,
		MaxIterations:      500,
	}, eval, r, algorithms.NewRand(11))
	if err != nil {
		t.Fatalf("NewAnnealingSearch: %v", err)
	}
	for !s.Done() {
		s.Step()
		checkBackbone(t, eval.Graph(), s.Current())
	}
	checkBackbone(t, eval.Graph(), s.Best())
	checkMonotone(t, s.History().Values())
}

func TestAnnealingTemperature(t *testing.T) {
	eval, r := backboneEvaluator(t, 5, pathEdges(5), nil, 1, 1, 5)

	testCases := []struct {
		name           string
		floor          algorithms.CoolingFloor
		wantIterations int
		wantFinal      float64
	}{
		{
			// 1·0.5^17 < 1e-5 ≤ 1·0.5^16
			name:           "ZeroFloorStopsEarly",
			floor:          algorithms.FloorZero,
			wantIterations: 17,
			wantFinal:      0,
		},
		{
			name:           "EpsilonFloorRunsToLimit",
			floor:          algorithms.FloorEpsilon,
			wantIterations: 100,
			wantFinal:      algorithms.DefaultMinTemperature,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := algorithms.NewAnnealingSearch(algorithms.AnnealingConfig{
				InitialTemperature: 1,
				CoolingFactor:      0.5,
				MaxIterations:      100,
				Floor:              tc.floor,
			}, eval, r, algorithms.NewRand(2))
			if err != nil {
				t.Fatalf("NewAnnealingSearch: %v", err)
			}

			prev := s.Temperature()
			for !s.Done() {
				s.Step()
				temp := s.Temperature()
				if temp < 0 || temp > prev {
					t.Fatalf("Temperature went from %v to %v", prev, temp)
				}
				prev = temp
			}
			if got := s.Steps(); got != tc.wantIterations {
				t.Errorf("Expected %d iterations, got %d", tc.wantIterations, got)
			}
			if got := s.Temperature(); got != tc.wantFinal {
				t.Errorf("Expected final temperature %v, got %v", tc.wantFinal, got)
			}
		})
	}
}

func TestAnnealingFloorNeverRaisesTemperature(t *testing.T) {
	eval, r := backboneEvaluator(t, 2, pathEdges(2), nil, 1, 1, 3)

	s, err := algorithms.NewAnnealingSearch(algorithms.AnnealingConfig{
		InitialTemperature: 1e-7,
		CoolingFactor:      0.9,
		MaxIterations:      3,
		Floor:              algorithms.FloorEpsilon,
	}, eval, r, algorithms.NewRand(2))
	if err != nil {
		t.Fatalf("NewAnnealingSearch: %v", err)
	}
	for !s.Done() {
		s.Step()
		if s.Temperature() > 1e-7 {
			t.Fatalf("Temperature rose to %v", s.Temperature())
		}
	}
}

func TestAnnealingTriangleConverges(t *testing.T) {
	eval, r := backboneEvaluator(t, 3, triangleEdges, nil, 1, 1, 3)

	s, err := algorithms.NewAnnealingSearch(algorithms.AnnealingConfig{
		InitialTemperature: 1,
		CoolingFactor:      0.999,
		MaxIterations:      5000,
		Floor:              algorithms.FloorEpsilon,
	}, eval, r, algorithms.NewRand(9))
	if err != nil {
		t.Fatalf("NewAnnealingSearch: %v", err)
	}
	for !s.Done() {
		s.Step()
	}
	if best := s.Best(); !best.Correct || best.ConflictCount != 0 {
		t.Errorf("Expected a correct labeling, got %+v", best)
	}
}

func TestAnnealingMetropolisAcceptance(t *testing.T) {
	eval, r := backboneEvaluator(t, 10, pathEdges(10), nil, 2, 1, 6)

	testCases := []struct {
		name          string
		config        algorithms.AnnealingConfig
		wantWorsening bool
	}{
		{
			name: "HotAcceptsWorseningMoves",
			config: algorithms.AnnealingConfig{
				InitialTemperature: 1e9,
				CoolingFactor:      0.9999,
				MaxIterations:      2000,
				Floor:              algorithms.FloorEpsilon,
			},
			wantWorsening: true,
		},
		{
			name: "FrozenRejectsWorseningMoves",
			config: algorithms.AnnealingConfig{
				InitialTemperature: 1e-9,
				CoolingFactor:      0.5,
				MaxIterations:      2000,
				Floor:              algorithms.FloorZero,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := algorithms.NewAnnealingSearch(tc.config, eval, r, algorithms.NewRand(17))
			if err != nil {
				t.Fatalf("NewAnnealingSearch: %v", err)
			}
			s.Step()
			if !tc.wantWorsening && s.Temperature() != 0 {
				t.Fatalf("Expected the search to be frozen, temperature is %v", s.Temperature())
			}

			worsening := 0
			for i := 0; i < 2000; i++ {
				prev := s.Current().Fitness
				s.Step()
				if s.Current().Fitness < prev {
					worsening++
				}
			}
			switch {
			case tc.wantWorsening && worsening < 100:
				t.Errorf("Expected many worsening moves to be accepted, got %d", worsening)
			case !tc.wantWorsening && worsening != 0:
				t.Errorf("Expected no worsening moves at zero temperature, got %d", worsening)
			}
		})
	}
}

func TestAnnealingDeterminism(t *testing.T) {
	eval, r := backboneEvaluator(t, 8, pathEdges(8), nil, 2, 1, 6)
	config := algorithms.AnnealingConfig{InitialTemperature: 2, CoolingFactor: 0.98, MaxIterations: 300}

	run := func() []int {
		s, err := algorithms.NewAnnealingSearch(config, eval, r, algorithms.NewRand(123))
		if err != nil {
			t.Fatalf("NewAnnealingSearch: %v", err)
		}
		for !s.Done() {
			s.Step()
		}
		return s.Best().Labels
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("Runs with the same seed differ (-first +second):\n%s", diff)
	}
}

func TestNewAnnealingSearchValidation(t *testing.T) {
	eval, r := backboneEvaluator(t, 2, pathEdges(2), nil, 1, 1, 3)

	testCases := []struct {
		name   string
		config algorithms.AnnealingConfig
	}{
		{name: "ZeroTemperature", config: algorithms.AnnealingConfig{CoolingFactor: 0.5, MaxIterations: 1}},
		{name: "CoolingFactorOne", config: algorithms.AnnealingConfig{InitialTemperature: 1, CoolingFactor: 1, MaxIterations: 1}},
		{name: "NoIterations", config: algorithms.AnnealingConfig{InitialTemperature: 1, CoolingFactor: 0.5}},
		{name: "UnknownFloor", config: algorithms.AnnealingConfig{InitialTemperature: 1, CoolingFactor: 0.5, MaxIterations: 1, Floor: "Ceiling"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := algorithms.NewAnnealingSearch(tc.config, eval, r, algorithms.NewRand(1)); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}
