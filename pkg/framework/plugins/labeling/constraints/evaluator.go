// Package constraints scores labelings against the L(h,k) separation
// constraints: adjacent vertices must differ by at least h, vertices at
// distance two by at least k.
package constraints

import (
	"fmt"
	"math"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// ChromaticPolicy selects how the chromatic number of a labeling is measured.
type ChromaticPolicy string

const (
	// DistinctCount counts distinct label values.
	DistinctCount ChromaticPolicy = "DistinctCount"
	// MaxLabel takes the largest label value.
	MaxLabel ChromaticPolicy = "MaxLabel"
)

// Config parameterizes an Evaluator.
type Config struct {
	H int
	K int

	Policy ChromaticPolicy

	ConflictWeight  float64
	ChromaticWeight float64
	// ChromaticBound normalizes the chromatic number in the fitness formula.
	ChromaticBound int
}

// Evaluator scores labelings of one graph. It holds no mutable state and is
// safe for concurrent use.
type Evaluator struct {
	cfg   Config
	graph *framework.Graph
	index *framework.NeighborIndex
}

// NewEvaluator validates cfg and binds it to a graph and its neighbor index.
func NewEvaluator(cfg Config, g *framework.Graph, idx *framework.NeighborIndex) (*Evaluator, error) {
	if g == nil || idx == nil {
		return nil, fmt.Errorf("nil graph or neighbor index")
	}
	if idx.VertexCount() != g.VertexCount() {
		return nil, fmt.Errorf("neighbor index has %d vertices, graph has %d", idx.VertexCount(), g.VertexCount())
	}
	if cfg.H < 0 || cfg.K < 0 {
		return nil, fmt.Errorf("separation must be non-negative, got h=%d k=%d", cfg.H, cfg.K)
	}
	if cfg.Policy != DistinctCount && cfg.Policy != MaxLabel {
		return nil, fmt.Errorf("unknown chromatic policy %q", cfg.Policy)
	}
	if cfg.ConflictWeight < 0 || cfg.ChromaticWeight < 0 || cfg.ConflictWeight+cfg.ChromaticWeight <= 0 {
		return nil, fmt.Errorf("weights must be non-negative with a positive sum, got %v/%v", cfg.ConflictWeight, cfg.ChromaticWeight)
	}
	if cfg.ChromaticBound < 1 {
		return nil, fmt.Errorf("chromatic bound must be at least 1, got %d", cfg.ChromaticBound)
	}
	return &Evaluator{cfg: cfg, graph: g, index: idx}, nil
}

// Config returns the evaluator configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Graph returns the graph the evaluator is bound to.
func (e *Evaluator) Graph() *framework.Graph { return e.graph }

// Index returns the neighbor index the evaluator scans.
func (e *Evaluator) Index() *framework.NeighborIndex { return e.index }

// IsConflicting reports whether vertex v violates a separation constraint.
// First-order neighbors are scanned before second-order ones and the scan
// stops at the first violation.
func (e *Evaluator) IsConflicting(v int, labels []int) bool {
	label := labels[v]
	for _, u := range e.index.First(v) {
		if abs(label-labels[u]) < e.cfg.H {
			return true
		}
	}
	for _, u := range e.index.Second(v) {
		if abs(label-labels[u]) < e.cfg.K {
			return true
		}
	}
	return false
}

// Score holds the constraint metrics of a labeling.
type Score struct {
	Correct         bool
	ConflictCount   int
	ChromaticNumber int
}

// Score scans every vertex. Correct is false if any vertex conflicts, fixed
// or not; ConflictCount only counts free vertices, so a conflicting backbone
// yields Correct=false with ConflictCount=0.
func (e *Evaluator) Score(labels []int) Score {
	s := Score{Correct: true}
	for v := range labels {
		if !e.IsConflicting(v, labels) {
			continue
		}
		s.Correct = false
		if e.graph.IsFree(v) {
			s.ConflictCount++
		}
	}
	s.ChromaticNumber = e.ChromaticNumber(labels)
	return s
}

// ChromaticNumber measures labels according to the configured policy.
func (e *Evaluator) ChromaticNumber(labels []int) int {
	if len(labels) == 0 {
		return 0
	}
	lo, hi := labels[0], labels[0]
	for _, l := range labels[1:] {
		lo = min(lo, l)
		hi = max(hi, l)
	}
	if e.cfg.Policy == MaxLabel {
		return hi
	}

	if span := hi - lo + 1; span > 4*len(labels)+64 {
		seen := make(map[int]struct{}, len(labels))
		for _, l := range labels {
			seen[l] = struct{}{}
		}
		return len(seen)
	}
	seen := make([]bool, hi-lo+1)
	distinct := 0
	for _, l := range labels {
		if !seen[l-lo] {
			seen[l-lo] = true
			distinct++
		}
	}
	return distinct
}

// Fitness combines conflict and chromatic terms into a value in [0,1]:
//
//	(wc·(1 − conflicts/V) + wx·(1 − chromatic/bound)) / (wc + wx)
//
// The chromatic ratio is clamped to [0,1].
func (e *Evaluator) Fitness(conflictCount, chromaticNumber int) float64 {
	n := float64(e.graph.VertexCount())
	conflictTerm := 1 - float64(conflictCount)/n
	ratio := float64(chromaticNumber) / float64(e.cfg.ChromaticBound)
	chromaticTerm := 1 - math.Max(0, math.Min(1, ratio))

	wc, wx := e.cfg.ConflictWeight, e.cfg.ChromaticWeight
	return (wc*conflictTerm + wx*chromaticTerm) / (wc + wx)
}

// Evaluate refreshes every cached metric of l.
func (e *Evaluator) Evaluate(l *framework.Labeling) {
	s := e.Score(l.Labels)
	l.Correct = s.Correct
	l.ConflictCount = s.ConflictCount
	l.ChromaticNumber = s.ChromaticNumber
	l.Fitness = e.Fitness(s.ConflictCount, s.ChromaticNumber)
}

// ConflictingFree returns the free vertices of labels that currently conflict,
// in ascending order.
func (e *Evaluator) ConflictingFree(labels []int) []int {
	var out []int
	for _, v := range e.graph.FreeVertices() {
		if e.IsConflicting(v, labels) {
			out = append(out, v)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
