package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/util"
)

// Problem is a benchmark graph with its separation constraints.
type Problem struct {
	Name     string
	Graph    *framework.Graph
	H        int
	K        int
	MaxLabel int
	// KnownSpan is the optimal L(h,k) span when known, 0 otherwise. With
	// labels starting at 1 the best reachable max label is KnownSpan+1.
	KnownSpan int
}

// Report is the outcome of one engine on one problem.
type Report struct {
	Problem         string
	Engine          v1alpha1.Engine
	Correct         bool
	Conflicts       int
	ChromaticNumber int
	Fitness         float64
	Steps           int
	Elapsed         time.Duration
	KnownSpan       int
}

// TestSuite runs both engines over a set of benchmark problems
type TestSuite struct {
	problems  []Problem
	genetic   *v1alpha1.GeneticArgs
	annealing *v1alpha1.AnnealingArgs
	maxTime   time.Duration
	seed      uint64
}

// NewTestSuite creates a suite. A nil engine config skips that engine.
func NewTestSuite(genetic *v1alpha1.GeneticArgs, annealing *v1alpha1.AnnealingArgs, maxTime time.Duration, seed uint64) *TestSuite {
	return &TestSuite{
		genetic:   genetic,
		annealing: annealing,
		maxTime:   maxTime,
		seed:      seed,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p Problem) {
	ts.problems = append(ts.problems, p)
}

// AddStandardProblems adds L(2,1) instances with known spans. MaxLabel
// leaves two labels of slack over the optimum.
func (ts *TestSuite) AddStandardProblems() error {
	standard := []struct {
		name  string
		build func() (*framework.Graph, error)
		span  int
	}{
		{name: "Path10", build: func() (*framework.Graph, error) { return Path(10) }, span: 4},
		{name: "Cycle12", build: func() (*framework.Graph, error) { return Cycle(12) }, span: 4},
		{name: "Complete6", build: func() (*framework.Graph, error) { return Complete(6) }, span: 10},
		{name: "Star8", build: func() (*framework.Graph, error) { return Star(8) }, span: 9},
		{name: "Petersen", build: Petersen, span: 9},
	}
	for _, s := range standard {
		g, err := s.build()
		if err != nil {
			return fmt.Errorf("building %s: %w", s.name, err)
		}
		ts.AddProblem(Problem{Name: s.name, Graph: g, H: 2, K: 1, MaxLabel: s.span + 3, KnownSpan: s.span})
	}
	return nil
}

// Run executes every configured engine on every problem. When outputDir is
// set, a fitness history chart per run is written there.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Report, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var reports []Report
	for _, problem := range ts.problems {
		for _, args := range ts.argsFor(problem) {
			logger.V(1).Info("Running benchmark", "problem", problem.Name, "engine", args.Engine)

			l, err := labeling.New(ctx, args, problem.Graph)
			if err != nil {
				return reports, fmt.Errorf("%s/%s: %w", problem.Name, args.Engine, err)
			}
			result, err := l.Run(ctx)
			if err != nil {
				return reports, fmt.Errorf("%s/%s: %w", problem.Name, args.Engine, err)
			}

			r := Report{
				Problem:         problem.Name,
				Engine:          args.Engine,
				Correct:         result.Best.Correct,
				Conflicts:       result.Best.ConflictCount,
				ChromaticNumber: result.Best.ChromaticNumber,
				Fitness:         result.Best.Fitness,
				Steps:           result.Steps,
				Elapsed:         result.Elapsed,
				KnownSpan:       problem.KnownSpan,
			}
			reports = append(reports, r)
			logger.Info("Benchmark result", "problem", r.Problem, "engine", r.Engine,
				"correct", r.Correct, "conflicts", r.Conflicts, "chromaticNumber", r.ChromaticNumber,
				"knownSpan", r.KnownSpan, "fitness", r.Fitness, "steps", r.Steps, "elapsed", r.Elapsed)

			if outputDir == "" {
				continue
			}
			plotFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s_history.html", problem.Name, args.Engine))
			err = util.PlotHistoryFile(plotFile, fmt.Sprintf("%s on %s", args.Engine, problem.Name),
				util.HistorySeries{Name: string(args.Engine), Values: result.History, Stride: result.HistoryStride})
			if err != nil {
				logger.Error(err, "Failed to plot history", "problem", problem.Name, "engine", args.Engine)
			}
		}
	}
	return reports, nil
}

func (ts *TestSuite) argsFor(p Problem) []*v1alpha1.LabelingArgs {
	base := v1alpha1.LabelingArgs{
		H:        p.H,
		K:        p.K,
		MaxLabel: p.MaxLabel,
		MaxTime:  metav1.Duration{Duration: ts.maxTime},
		Seed:     ts.seed,
	}
	var out []*v1alpha1.LabelingArgs
	if ts.genetic != nil {
		args := base.DeepCopy()
		args.Engine = v1alpha1.EngineGenetic
		args.Genetic = ts.genetic.DeepCopy()
		out = append(out, args)
	}
	if ts.annealing != nil {
		args := base.DeepCopy()
		args.Engine = v1alpha1.EngineAnnealing
		args.Annealing = ts.annealing.DeepCopy()
		out = append(out, args)
	}
	for _, args := range out {
		v1alpha1.Default(args)
	}
	return out
}
