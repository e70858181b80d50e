package benchmarks

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

var (
	ErrTooFewVertices     = errors.New("too few vertices")
	ErrInvalidProbability = errors.New("probability must be in [0,1]")
)

// Path returns the path 0-1-...-(n-1).
func Path(n int) (*framework.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("Path: n=%d: %w", n, ErrTooFewVertices)
	}
	edges := make([][2]int, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return framework.NewGraph(n, edges, nil)
}

// Cycle returns the cycle on n ≥ 3 vertices.
func Cycle(n int) (*framework.Graph, error) {
	if n < 3 {
		return nil, fmt.Errorf("Cycle: n=%d < 3: %w", n, ErrTooFewVertices)
	}
	return framework.NewGraph(n, cycleEdges(n), nil)
}

func cycleEdges(n int) [][2]int {
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return edges
}

// Complete returns K_n.
func Complete(n int) (*framework.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("Complete: n=%d: %w", n, ErrTooFewVertices)
	}
	edges := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return framework.NewGraph(n, edges, nil)
}

// Star returns K_{1,leaves} with the hub at vertex 0.
func Star(leaves int) (*framework.Graph, error) {
	if leaves < 1 {
		return nil, fmt.Errorf("Star: leaves=%d: %w", leaves, ErrTooFewVertices)
	}
	edges := make([][2]int, 0, leaves)
	for i := 1; i <= leaves; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return framework.NewGraph(leaves+1, edges, nil)
}

// Wheel returns a cycle on n-1 vertices plus a hub, vertex n-1, joined to
// every cycle vertex.
func Wheel(n int) (*framework.Graph, error) {
	if n < 4 {
		return nil, fmt.Errorf("Wheel: n=%d < 4: %w", n, ErrTooFewVertices)
	}
	edges := cycleEdges(n - 1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, n - 1})
	}
	return framework.NewGraph(n, edges, nil)
}

// Grid returns the rows×cols grid, vertex r·cols+c at row r, column c.
func Grid(rows, cols int) (*framework.Graph, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("Grid: %dx%d: %w", rows, cols, ErrTooFewVertices)
	}
	var edges [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := r*cols + c
			if c+1 < cols {
				edges = append(edges, [2]int{v, v + 1})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{v, v + cols})
			}
		}
	}
	return framework.NewGraph(rows*cols, edges, nil)
}

// Petersen returns the Petersen graph: outer 5-cycle 0..4, inner pentagram
// 5..9 and spokes i-(i+5).
func Petersen() (*framework.Graph, error) {
	edges := make([][2]int, 0, 15)
	for i := 0; i < 5; i++ {
		edges = append(edges,
			[2]int{i, (i + 1) % 5},
			[2]int{5 + i, 5 + (i+2)%5},
			[2]int{i, i + 5},
		)
	}
	return framework.NewGraph(10, edges, nil)
}

// RandomSparse includes each of the n(n-1)/2 possible edges independently
// with probability p. Trials run in ascending (i, j) order, so a fixed seed
// yields a fixed graph.
func RandomSparse(n int, p float64, rng *rand.Rand) (*framework.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomSparse: n=%d: %w", n, ErrTooFewVertices)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("RandomSparse: p=%v: %w", p, ErrInvalidProbability)
	}
	var edges [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return framework.NewGraph(n, edges, nil)
}

// WithBackbone returns a copy of g with the given vertices fixed.
func WithBackbone(g *framework.Graph, fixed map[int]int) (*framework.Graph, error) {
	backbone := make([]int, g.VertexCount())
	for v := range backbone {
		backbone[v], _ = g.Fixed(v)
	}
	for v, label := range fixed {
		if v < 0 || v >= len(backbone) {
			return nil, fmt.Errorf("WithBackbone: %w: vertex %d", framework.ErrVertexRange, v)
		}
		backbone[v] = label
	}
	var edges [][2]int
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range g.Adjacent(u) {
			if u < v {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return framework.NewGraph(g.VertexCount(), edges, backbone)
}
