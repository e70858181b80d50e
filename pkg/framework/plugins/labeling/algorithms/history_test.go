package algorithms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
)

func TestFitnessHistoryObserve(t *testing.T) {
	h := algorithms.NewFitnessHistory(4)
	for step, f := range []float64{0.2, 0.5, 0.4, 0.7} {
		h.Observe(step, f)
	}

	if diff := cmp.Diff([]float64{0.2, 0.5, 0.5, 0.7}, h.Values()); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if h.Best() != 0.7 {
		t.Errorf("Expected best 0.7, got %v", h.Best())
	}
}

func TestSampleHistory(t *testing.T) {
	testCases := []struct {
		name  string
		steps int
		n     int
		want  int
	}{
		{name: "FewerThanSamples", steps: 9, n: 100, want: 10},
		{name: "ExactMultiple", steps: 199, n: 100, want: 100},
		{name: "Uneven", steps: 250, n: 100, want: 84},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := algorithms.NewFitnessHistory(tc.steps)
			for step := 0; step <= tc.steps; step++ {
				h.Observe(step, float64(step))
			}
			got := algorithms.SampleHistory(h.Values(), tc.n)
			if len(got) != tc.want {
				t.Errorf("Expected %d samples, got %d", tc.want, len(got))
			}
			if got[0] != 0 {
				t.Errorf("Expected the first sample to be step 0, got %v", got[0])
			}
		})
	}
}

func TestFitnessHistoryStride(t *testing.T) {
	steps := 1 << 20
	h := algorithms.NewFitnessHistory(steps)
	if h.Stride() <= 1 {
		t.Fatalf("Expected a stride above 1 for %d steps, got %d", steps, h.Stride())
	}
	for step := 0; step <= steps; step++ {
		h.Observe(step, float64(step)/float64(steps))
	}
	values := h.Values()
	if len(values) > 1<<16 {
		t.Errorf("Expected at most %d slots, got %d", 1<<16, len(values))
	}
	checkMonotone(t, values)
	if h.Best() != 1 {
		t.Errorf("Expected best 1, got %v", h.Best())
	}
}
