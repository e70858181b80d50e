package framework

import (
	"golang.org/x/exp/rand"
)

// Labeling is a candidate solution: one label per vertex plus cached metrics
// filled by the evaluator.
type Labeling struct {
	Labels []int

	Correct         bool
	ConflictCount   int
	ChromaticNumber int
	Fitness         float64
}

// NewLabeling allocates a zeroed labeling for n vertices.
func NewLabeling(n int) *Labeling {
	return &Labeling{Labels: make([]int, n)}
}

// CopyFrom overwrites l with src's labels and cached metrics. Both labelings
// must have the same length.
func (l *Labeling) CopyFrom(src *Labeling) {
	copy(l.Labels, src.Labels)
	l.Correct = src.Correct
	l.ConflictCount = src.ConflictCount
	l.ChromaticNumber = src.ChromaticNumber
	l.Fitness = src.Fitness
}

// Clone returns a deep copy.
func (l *Labeling) Clone() *Labeling {
	c := NewLabeling(len(l.Labels))
	c.CopyFrom(l)
	return c
}

// LabelRange is the inclusive interval labels are drawn from.
type LabelRange struct {
	Min int
	Max int
}

// Size returns the number of labels in the range.
func (r LabelRange) Size() int { return r.Max - r.Min + 1 }

// Random draws a uniform label from the range.
func (r LabelRange) Random(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Size())
}

// Randomize assigns every free vertex of g a random label from r and every
// fixed vertex its backbone label.
func (l *Labeling) Randomize(g *Graph, r LabelRange, rng *rand.Rand) {
	for v := range l.Labels {
		if label, fixed := g.Fixed(v); fixed {
			l.Labels[v] = label
			continue
		}
		l.Labels[v] = r.Random(rng)
	}
}
