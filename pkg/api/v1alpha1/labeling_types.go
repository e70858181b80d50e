/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
)

// Engine selects the search strategy of a run.
type Engine string

const (
	// EngineGenetic runs the island genetic algorithm.
	EngineGenetic Engine = algorithms.GeneticName
	// EngineAnnealing runs simulated annealing.
	EngineAnnealing Engine = algorithms.AnnealingName
)

// Chromatic number policies.
const (
	ChromaticPolicyDistinctCount = string(constraints.DistinctCount)
	ChromaticPolicyMaxLabel      = string(constraints.MaxLabel)
)

// Cooling floor policies.
const (
	CoolingFloorZero    = string(algorithms.FloorZero)
	CoolingFloorEpsilon = string(algorithms.FloorEpsilon)
)

// Crossover operators.
const (
	CrossoverFitnessProportional = algorithms.FitnessProportional
	CrossoverUniform             = algorithms.Uniform
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// LabelingArgs holds the parameters of one labeling run
type LabelingArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Engine is GA or SA
	Engine Engine `json:"engine"`

	// H is the minimum label difference between adjacent vertices
	H int `json:"h"`

	// K is the minimum label difference between vertices at distance two
	K int `json:"k"`

	// MaxLabel bounds labels to [1, MaxLabel] and selects the max-label
	// chromatic policy. Zero selects the density-bounded variant.
	MaxLabel int `json:"maxLabel,omitempty"`

	// MaxTime is the wall-clock budget of the run
	MaxTime metav1.Duration `json:"maxTime"`

	// Seed initializes the random stream. Zero uses a fixed default seed.
	Seed uint64 `json:"seed,omitempty"`

	Evaluator *EvaluatorArgs `json:"evaluator,omitempty"`
	Genetic   *GeneticArgs   `json:"genetic,omitempty"`
	Annealing *AnnealingArgs `json:"annealing,omitempty"`
}

// EvaluatorArgs overrides the fitness function of the selected variant
type EvaluatorArgs struct {
	// ChromaticPolicy is DistinctCount or MaxLabel
	ChromaticPolicy string `json:"chromaticPolicy,omitempty"`

	ConflictWeight  *float64 `json:"conflictWeight,omitempty"`
	ChromaticWeight *float64 `json:"chromaticWeight,omitempty"`

	// ChromaticBound normalizes the chromatic number. Zero derives it from
	// MaxLabel or, without one, from the graph density.
	ChromaticBound int `json:"chromaticBound,omitempty"`
}

// GeneticArgs configures the genetic engine
type GeneticArgs struct {
	Islands        int     `json:"islands"`
	IslandSize     int     `json:"islandSize"`
	MutationChance float64 `json:"mutationChance"`
	Elites         int     `json:"elites"`
	MaxGenerations int     `json:"maxGenerations"`

	// TournamentFraction sizes tournaments as a fraction of the island
	TournamentFraction float64 `json:"tournamentFraction,omitempty"`

	// Crossover is FitnessProportional or Uniform
	Crossover string `json:"crossover,omitempty"`

	// Parallel advances islands concurrently
	Parallel bool `json:"parallel,omitempty"`

	// WarmStart seeds this many initial individuals with greedy first-fit
	// labelings instead of random ones.
	WarmStart int `json:"warmStart,omitempty"`
}

// AnnealingArgs configures the annealing engine
type AnnealingArgs struct {
	Temperature   float64 `json:"temperature"`
	CoolingFactor float64 `json:"coolingFactor"`
	MaxIterations int     `json:"maxIterations"`

	MinTemperature float64 `json:"minTemperature,omitempty"`

	// CoolingFloor is Zero or Epsilon
	CoolingFloor string `json:"coolingFloor,omitempty"`

	// Restarts is the number of independent trajectories
	Restarts int `json:"restarts,omitempty"`
}
