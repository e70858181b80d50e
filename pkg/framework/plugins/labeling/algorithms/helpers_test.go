package algorithms_test

import (
	"testing"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

var triangleEdges = [][2]int{{0, 1}, {1, 2}, {0, 2}}

func backboneEvaluator(t *testing.T, n int, edges [][2]int, backbone []int, h, k, maxLabel int) (*constraints.Evaluator, framework.LabelRange) {
	t.Helper()
	g, err := framework.NewGraph(n, edges, backbone)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	cfg, r := constraints.BackbonePreset(h, k, maxLabel)
	e, err := constraints.NewEvaluator(cfg, g, framework.BuildNeighborIndex(g))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return e, r
}

func pathEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

func checkBackbone(t *testing.T, g *framework.Graph, l *framework.Labeling) {
	t.Helper()
	for v := range l.Labels {
		if label, fixed := g.Fixed(v); fixed && l.Labels[v] != label {
			t.Fatalf("Backbone vertex %d relabeled: expected %d, got %d", v, label, l.Labels[v])
		}
	}
}

func checkMonotone(t *testing.T, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("History decreased at %d: %v < %v", i, values[i], values[i-1])
		}
	}
}
