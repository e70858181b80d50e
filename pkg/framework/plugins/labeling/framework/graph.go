package framework

import (
	"fmt"
	"slices"
)

// Graph is an immutable undirected graph with an optional backbone of fixed
// labels. Vertices are 0-based internally.
type Graph struct {
	vertexCount int
	edgeCount   int
	adjacency   arena
	backbone    []int
	free        []int
}

// NewGraph builds a Graph from 0-based edges. Duplicate edges collapse to one.
// backbone may be nil (all vertices free); otherwise it must have one entry per
// vertex, 0 meaning free.
func NewGraph(vertexCount int, edges [][2]int, backbone []int) (*Graph, error) {
	if vertexCount <= 0 {
		return nil, ErrNoVertices
	}
	if backbone != nil && len(backbone) != vertexCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBackboneSize, len(backbone), vertexCount)
	}

	rows := make([][]int, vertexCount)
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= vertexCount || v < 0 || v >= vertexCount {
			return nil, fmt.Errorf("%w: edge %d-%d with %d vertices", ErrVertexRange, u+1, v+1, vertexCount)
		}
		if u == v {
			return nil, fmt.Errorf("%w: vertex %d", ErrSelfLoop, u+1)
		}
		rows[u] = append(rows[u], v)
		rows[v] = append(rows[v], u)
	}

	degreeSum := 0
	for v := range rows {
		slices.Sort(rows[v])
		rows[v] = slices.Compact(rows[v])
		degreeSum += len(rows[v])
	}

	g := &Graph{
		vertexCount: vertexCount,
		edgeCount:   degreeSum / 2,
		adjacency:   newArena(rows),
		backbone:    make([]int, vertexCount),
	}
	if backbone != nil {
		for v, label := range backbone {
			if label < 0 {
				return nil, fmt.Errorf("%w: vertex %d has label %d", ErrNegativeLabel, v+1, label)
			}
		}
		copy(g.backbone, backbone)
	}
	for v, label := range g.backbone {
		if label == 0 {
			g.free = append(g.free, v)
		}
	}
	return g, nil
}

// VertexCount returns V.
func (g *Graph) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Adjacent returns the sorted neighbors of v. The slice must not be modified.
func (g *Graph) Adjacent(v int) []int { return g.adjacency.row(v) }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adjacency.row(v)) }

// Fixed returns the backbone label of v and whether v is fixed.
func (g *Graph) Fixed(v int) (int, bool) {
	label := g.backbone[v]
	return label, label != 0
}

// IsFree reports whether v may be relabeled by a search.
func (g *Graph) IsFree(v int) bool { return g.backbone[v] == 0 }

// FreeVertices returns the free vertices in ascending order. The slice must
// not be modified.
func (g *Graph) FreeVertices() []int { return g.free }

// FixedCount returns the number of backbone vertices.
func (g *Graph) FixedCount() int { return g.vertexCount - len(g.free) }

// Density returns E / (V·(V−1)/2), or 0 for a single vertex.
func (g *Graph) Density() float64 {
	if g.vertexCount < 2 {
		return 0
	}
	complete := float64(g.vertexCount) * float64(g.vertexCount-1) / 2
	return float64(g.edgeCount) / complete
}
