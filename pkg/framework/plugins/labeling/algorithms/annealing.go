package algorithms

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

const (
	// AnnealingName identifies the annealing engine in logs and results.
	AnnealingName = "SA"

	// DefaultMinTemperature is the floor the cooling schedule clamps at.
	DefaultMinTemperature = 1e-5
)

// CoolingFloor selects what happens once the temperature drops below the
// minimum temperature.
type CoolingFloor string

const (
	// FloorZero sets the temperature to 0, which ends the search.
	FloorZero CoolingFloor = "Zero"
	// FloorEpsilon holds the temperature at the minimum and keeps iterating
	// until the iteration or time budget runs out.
	FloorEpsilon CoolingFloor = "Epsilon"
)

// AnnealingConfig holds configuration parameters for AnnealingSearch.
type AnnealingConfig struct {
	InitialTemperature float64
	CoolingFactor      float64
	MaxIterations      int

	// MinTemperature defaults to DefaultMinTemperature when zero.
	MinTemperature float64
	// Floor defaults to FloorZero when empty.
	Floor CoolingFloor
}

func (c AnnealingConfig) validate() error {
	switch {
	case !(c.InitialTemperature > 0) || math.IsInf(c.InitialTemperature, 1):
		return fmt.Errorf("initial temperature must be positive and finite, got %v", c.InitialTemperature)
	case !(c.CoolingFactor > 0 && c.CoolingFactor < 1):
		return fmt.Errorf("cooling factor must be in (0,1), got %v", c.CoolingFactor)
	case c.MaxIterations < 1:
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	case !(c.MinTemperature > 0):
		return fmt.Errorf("min temperature must be positive, got %v", c.MinTemperature)
	case c.Floor != FloorZero && c.Floor != FloorEpsilon:
		return fmt.Errorf("unknown cooling floor %q", c.Floor)
	}
	return nil
}

// AnnealingSearch walks a single trajectory with Metropolis acceptance and
// geometric cooling.
type AnnealingSearch struct {
	cfg    AnnealingConfig
	eval   *constraints.Evaluator
	labels framework.LabelRange
	rng    *rand.Rand

	current *framework.Labeling
	next    *framework.Labeling
	best    *framework.Labeling

	temperature float64
	floor       float64
	iteration   int
	history     *FitnessHistory
}

// NewAnnealingSearch starts from a random labeling drawn with rng. The search
// keeps using rng; callers must not share it with another goroutine.
func NewAnnealingSearch(cfg AnnealingConfig, eval *constraints.Evaluator, r framework.LabelRange, rng *rand.Rand) (*AnnealingSearch, error) {
	if cfg.MinTemperature == 0 {
		cfg.MinTemperature = DefaultMinTemperature
	}
	if cfg.Floor == "" {
		cfg.Floor = FloorZero
	}
	if err := cfg.validate(); err != nil {
		return nil, &framework.ConfigError{Err: err}
	}
	if err := validateLabelRange(r); err != nil {
		return nil, err
	}

	n := eval.Graph().VertexCount()
	s := &AnnealingSearch{
		cfg:         cfg,
		eval:        eval,
		labels:      r,
		rng:         rng,
		current:     framework.NewLabeling(n),
		next:        framework.NewLabeling(n),
		temperature: cfg.InitialTemperature,
		// Clamping never raises the temperature above its start.
		floor:   math.Min(cfg.MinTemperature, cfg.InitialTemperature),
		history: NewFitnessHistory(cfg.MaxIterations),
	}
	s.current.Randomize(eval.Graph(), r, rng)
	eval.Evaluate(s.current)
	s.best = s.current.Clone()
	s.history.Observe(0, s.best.Fitness)
	return s, nil
}

// Step performs one perturb, evaluate, accept and cool iteration.
func (s *AnnealingSearch) Step() {
	s.next.CopyFrom(s.current)
	if perturb(s.eval, s.next, s.labels, s.rng) {
		s.eval.Evaluate(s.next)
	}

	if s.accept(s.current.Fitness, s.next.Fitness) {
		s.current.CopyFrom(s.next)
		if s.current.Fitness > s.best.Fitness {
			s.best.CopyFrom(s.current)
		}
	}

	s.iteration++
	s.cool()
	s.history.Observe(s.iteration, s.best.Fitness)
}

// accept applies the Metropolis criterion. A frozen search only accepts
// improvements.
func (s *AnnealingSearch) accept(current, next float64) bool {
	if next > current {
		return true
	}
	if s.temperature <= 0 {
		return false
	}
	return s.rng.Float64() < math.Exp((next-current)/s.temperature)
}

func (s *AnnealingSearch) cool() {
	s.temperature *= s.cfg.CoolingFactor
	if s.temperature >= s.floor {
		return
	}
	switch s.cfg.Floor {
	case FloorZero:
		s.temperature = 0
	case FloorEpsilon:
		s.temperature = s.floor
	}
}

// Done reports whether the iteration limit is reached or, under FloorZero,
// the temperature has dropped to zero.
func (s *AnnealingSearch) Done() bool {
	return s.iteration >= s.cfg.MaxIterations || s.temperature <= 0
}

// Steps returns the number of completed iterations.
func (s *AnnealingSearch) Steps() int { return s.iteration }

// Temperature returns the current temperature.
func (s *AnnealingSearch) Temperature() float64 { return s.temperature }

// Current returns the labeling the trajectory is at. It must not be modified.
func (s *AnnealingSearch) Current() *framework.Labeling { return s.current }

// Best returns the best labeling seen so far. It must not be modified.
func (s *AnnealingSearch) Best() *framework.Labeling { return s.best }

// History returns the per-iteration best fitness.
func (s *AnnealingSearch) History() *FitnessHistory { return s.history }
