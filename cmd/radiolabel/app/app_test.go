package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestGeneticCommand(t *testing.T) {
	graph := writeFile(t, "triangle.in", "3\n3\n0\n1 2\n2 3\n1 3\n")
	out, err := execute(t, "ga", "1", "1", graph, "3", "2", "20", "0.2", "2", "30", "10", "--seed=1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got := lines(out)
	if len(got) != 8 {
		t.Fatalf("Expected 8 report lines, got %d:\n%s", len(got), out)
	}
	if labels := strings.Fields(got[2]); len(labels) != 3 {
		t.Errorf("Expected 3 labels, got %q", got[2])
	}
	if got[3] != "0" && got[3] != "1" {
		t.Errorf("Expected a 1/0 correctness flag, got %q", got[3])
	}
}

func TestAnnealingCommandIsDeterministic(t *testing.T) {
	graph := writeFile(t, "path.in", "4\n3\n1 2\n2 3\n3 4\n")
	args := []string{"sa", "2", "1", graph, "1", "0.99", "300", "10", "--seed=5"}

	first, err := execute(t, args...)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := execute(t, args...)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a, b := lines(first), lines(second)
	if len(a) != 8 {
		t.Fatalf("Expected 8 report lines, got %d:\n%s", len(a), first)
	}
	// Elapsed time differs between runs, everything else must not.
	if diff := cmp.Diff(a[1:], b[1:]); diff != "" {
		t.Errorf("Runs with the same seed differ (-first +second):\n%s", diff)
	}
}

func TestAnnealingCommandBackboneJSON(t *testing.T) {
	graph := writeFile(t, "backbone.in", "3 2 1\n1 2\n2 3\n1 1\n")
	out, err := execute(t, "sa", "2", "1", graph, "6", "1", "0.99", "300", "10", "--seed=5", "-o", "json", "--restarts=2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"engine": "SA"`) || !strings.Contains(out, `"temperature"`) {
		t.Errorf("Unexpected JSON report:\n%s", out)
	}
	if !strings.Contains(out, `"solution": [`+"\n    1,") {
		t.Errorf("Expected the fixed label of vertex 1 in the solution:\n%s", out)
	}
}

func TestRunCommand(t *testing.T) {
	graph := writeFile(t, "path.in", "5\n4\n1 2\n2 3\n3 4\n4 5\n")
	config := writeFile(t, "args.yaml", `apiVersion: labeling/v1alpha1
kind: LabelingArgs
engine: SA
h: 2
k: 1
maxTime: 10s
seed: 3
annealing:
  temperature: 1
  coolingFactor: 0.99
  maxIterations: 200
  coolingFloor: Epsilon
`)
	plot := filepath.Join(t.TempDir(), "history.html")
	out, err := execute(t, "run", "--config", config, "--graph", graph, "--plot", plot)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := lines(out); len(got) != 8 || got[1] != "200" {
		t.Errorf("Expected 200 iterations with the epsilon floor, got:\n%s", out)
	}
	if _, err := os.Stat(plot); err != nil {
		t.Errorf("Expected a history chart: %v", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "generate", "path", "-n", "3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff("3\n2\n1 2\n2 3\n", out); diff != "" {
		t.Errorf("Generated graph mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandErrors(t *testing.T) {
	graph := writeFile(t, "bad.in", "3\n1\n1 4\n")
	valid := writeFile(t, "path.in", "2\n1\n1 2\n")

	tests := []struct {
		name    string
		args    []string
		kind    error
		message string
	}{
		{
			name:    "wrong argument count",
			args:    []string{"ga", "1", "1", valid},
			kind:    framework.ErrConfig,
			message: "invalid configuration",
		},
		{
			name:    "non numeric argument",
			args:    []string{"sa", "two", "1", valid, "1", "0.9", "10", "1"},
			kind:    framework.ErrConfig,
			message: "invalid configuration",
		},
		{
			name:    "out of range parameter",
			args:    []string{"sa", "2", "1", valid, "1", "1.5", "10", "1"},
			kind:    framework.ErrConfig,
			message: "invalid configuration",
		},
		{
			name:    "vertex out of range",
			args:    []string{"sa", "2", "1", graph, "1", "0.9", "10", "1"},
			kind:    framework.ErrInputFormat,
			message: "invalid input file",
		},
		{
			name:    "missing file",
			args:    []string{"sa", "2", "1", filepath.Join(t.TempDir(), "missing.in"), "1", "0.9", "10", "1"},
			kind:    framework.ErrInputFormat,
			message: "invalid input file",
		},
		{
			name:    "unknown generator",
			args:    []string{"generate", "hypercube"},
			kind:    framework.ErrConfig,
			message: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Expected %v, got %v", tt.kind, err)
			}
			var stderr bytes.Buffer
			if code := HandleError(&stderr, err); code != 1 {
				t.Errorf("Expected exit code 1, got %d", code)
			}
			if !strings.HasPrefix(stderr.String(), tt.message) {
				t.Errorf("Expected diagnostic starting with %q, got %q", tt.message, stderr.String())
			}
		})
	}
}

func TestHandleErrorSuccess(t *testing.T) {
	var stderr bytes.Buffer
	if code := HandleError(&stderr, nil); code != 0 || stderr.Len() != 0 {
		t.Errorf("Expected exit code 0 and no output, got %d and %q", code, stderr.String())
	}
}
