package framework

import "slices"

// NeighborIndex holds, for every vertex, its first-order neighbors and its
// second-order neighbors (neighbors of neighbors, minus the vertex itself).
// A vertex may appear in both sets of another vertex when the graph has
// triangles; the overlap is kept. The index is immutable after construction
// and safe for concurrent readers.
type NeighborIndex struct {
	first  arena
	second arena
}

// BuildNeighborIndex derives the index from g in O(sum of squared degrees).
func BuildNeighborIndex(g *Graph) *NeighborIndex {
	n := g.VertexCount()
	second := make([][]int, n)

	// stamp[u] == v+1 marks u as already collected for vertex v.
	stamp := make([]int, n)
	for v := 0; v < n; v++ {
		var row []int
		for _, u := range g.Adjacent(v) {
			for _, w := range g.Adjacent(u) {
				if w == v || stamp[w] == v+1 {
					continue
				}
				stamp[w] = v + 1
				row = append(row, w)
			}
		}
		slices.Sort(row)
		second[v] = row
	}

	return &NeighborIndex{
		first:  g.adjacency,
		second: newArena(second),
	}
}

// First returns the sorted first-order neighbors of v.
func (n *NeighborIndex) First(v int) []int { return n.first.row(v) }

// Second returns the sorted second-order neighbors of v.
func (n *NeighborIndex) Second(v int) []int { return n.second.row(v) }

// VertexCount returns the number of indexed vertices.
func (n *NeighborIndex) VertexCount() int { return len(n.first.offsets) - 1 }

// SecondOrderSize returns the total number of second-order entries.
func (n *NeighborIndex) SecondOrderSize() int { return n.second.size() }
