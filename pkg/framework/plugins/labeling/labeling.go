/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package labeling

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/constraints"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/warmstart"
)

const PluginName = "Labeling"

var tracer = otel.Tracer("graph-labeling/labeling")

// Result summarizes a finished run.
type Result struct {
	Engine  v1alpha1.Engine
	Elapsed time.Duration
	// Steps counts generations (GA) or iterations (SA).
	Steps int
	// Temperature is the final temperature of the winning trajectory (SA).
	Temperature float64
	Best        *framework.Labeling
	// History holds the best fitness per recorded step, HistoryStride steps
	// apart.
	History       []float64
	HistoryStride int
	StopReason    algorithms.StopReason
	// Warning is set when the backbone itself violates the constraints.
	Warning *framework.InfeasibleBackboneWarning
}

// SampledHistory returns roughly n history values, every ceil(len/n)-th
// slot starting with the first.
func (r *Result) SampledHistory(n int) []float64 {
	return algorithms.SampleHistory(r.History, n)
}

// Option configures a Labeler.
type Option func(*Labeler)

// WithClock replaces the wall clock used for the time budget.
func WithClock(c clock.PassiveClock) Option {
	return func(l *Labeler) { l.clock = c }
}

// Labeler runs one engine over one graph. The graph, neighbor index and
// evaluator are built once and shared read-only by every search.
type Labeler struct {
	logger  klog.Logger
	args    *v1alpha1.LabelingArgs
	graph   *framework.Graph
	eval    *constraints.Evaluator
	labels  framework.LabelRange
	warning *framework.InfeasibleBackboneWarning
	clock   clock.PassiveClock
}

// New validates args against g and prepares the evaluator. args must be
// defaulted.
func New(ctx context.Context, args *v1alpha1.LabelingArgs, g *framework.Graph, opts ...Option) (*Labeler, error) {
	if args == nil || g == nil {
		return nil, &framework.ConfigError{Err: fmt.Errorf("args and graph are required")}
	}
	if err := v1alpha1.ValidateLabelingArgs(args); err != nil {
		return nil, err
	}
	if err := v1alpha1.ValidateBackbone(args, g); err != nil {
		return nil, err
	}
	logger := klog.FromContext(ctx).WithValues("plugin", PluginName, "engine", args.Engine)

	cfg, r := evaluatorConfig(args, g)
	idx := framework.BuildNeighborIndex(g)
	eval, err := constraints.NewEvaluator(cfg, g, idx)
	if err != nil {
		return nil, &framework.ConfigError{Err: err}
	}

	l := &Labeler{
		logger: logger,
		args:   args,
		graph:  g,
		eval:   eval,
		labels: r,
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(l)
	}

	logger.V(2).Info("Labeler configured",
		"vertices", g.VertexCount(), "edges", g.EdgeCount(), "fixed", g.FixedCount(),
		"secondOrderSize", idx.SecondOrderSize(), "h", args.H, "k", args.K,
		"policy", cfg.Policy, "chromaticBound", cfg.ChromaticBound, "labelRange", fmt.Sprintf("[%d,%d]", r.Min, r.Max))

	if w := constraints.CheckBackbone(g, idx, args.H, args.K); w != nil {
		l.warning = w
		logger.Info("Backbone violates the separation constraints", "warning", w.Error(), "pairs", len(w.Pairs))
	}
	return l, nil
}

// evaluatorConfig picks the preset of the variant selected by MaxLabel and
// applies the overrides of args.Evaluator.
func evaluatorConfig(args *v1alpha1.LabelingArgs, g *framework.Graph) (constraints.Config, framework.LabelRange) {
	var (
		cfg constraints.Config
		r   framework.LabelRange
	)
	if args.MaxLabel > 0 {
		cfg, r = constraints.BackbonePreset(args.H, args.K, args.MaxLabel)
	} else {
		cfg, r = constraints.DensityPreset(g, args.H, args.K)
	}

	e := args.Evaluator
	if e == nil {
		return cfg, r
	}
	if e.ChromaticPolicy != "" {
		cfg.Policy = constraints.ChromaticPolicy(e.ChromaticPolicy)
	}
	if e.ConflictWeight != nil {
		cfg.ConflictWeight = *e.ConflictWeight
	}
	if e.ChromaticWeight != nil {
		cfg.ChromaticWeight = *e.ChromaticWeight
	}
	if e.ChromaticBound > 0 {
		cfg.ChromaticBound = e.ChromaticBound
		if args.MaxLabel == 0 {
			r.Max = e.ChromaticBound - 1
		}
	}
	return cfg, r
}

// Graph returns the graph the labeler runs on.
func (l *Labeler) Graph() *framework.Graph { return l.graph }

// Evaluator returns the shared evaluator.
func (l *Labeler) Evaluator() *constraints.Evaluator { return l.eval }

// LabelRange returns the range labels are drawn from.
func (l *Labeler) LabelRange() framework.LabelRange { return l.labels }

// Warning returns the infeasible backbone warning, if any.
func (l *Labeler) Warning() *framework.InfeasibleBackboneWarning { return l.warning }

// Run executes the configured engine. On cancellation the partial result is
// returned together with the context error.
func (l *Labeler) Run(ctx context.Context) (*Result, error) {
	switch l.args.Engine {
	case v1alpha1.EngineGenetic:
		return l.RunGenetic(ctx)
	case v1alpha1.EngineAnnealing:
		return l.RunAnnealing(ctx)
	}
	return nil, &framework.ConfigError{Err: fmt.Errorf("unknown engine %q", l.args.Engine)}
}

// RunGenetic runs the island genetic algorithm.
func (l *Labeler) RunGenetic(ctx context.Context) (*Result, error) {
	ctx, span := l.startSpan(ctx, "Labeler.RunGenetic")
	defer span.End()
	logger := l.logger

	ga := l.args.Genetic
	if ga == nil {
		return nil, l.fail(span, v1alpha1.EngineGenetic, &framework.ConfigError{Err: fmt.Errorf("genetic args are required")})
	}
	crossover, ok := algorithms.CrossoverByName(ga.Crossover)
	if !ok {
		return nil, l.fail(span, v1alpha1.EngineGenetic, &framework.ConfigError{Err: fmt.Errorf("unknown crossover %q", ga.Crossover)})
	}
	config := algorithms.GeneticConfig{
		Islands:            ga.Islands,
		IslandSize:         ga.IslandSize,
		Elites:             ga.Elites,
		MutationChance:     ga.MutationChance,
		MaxGenerations:     ga.MaxGenerations,
		TournamentFraction: ga.TournamentFraction,
		Crossover:          crossover,
		Parallel:           ga.Parallel,
	}
	logger.V(2).Info("Starting genetic search",
		"islands", config.Islands, "islandSize", config.IslandSize, "elites", config.Elites,
		"mutationChance", config.MutationChance, "maxGenerations", config.MaxGenerations,
		"tournamentRounds", algorithms.TournamentRounds(config.IslandSize, ga.TournamentFraction),
		"crossover", ga.Crossover, "parallel", config.Parallel, "seed", l.args.Seed)

	if ga.WarmStart > 0 {
		config.Seeds = warmstart.Greedy(l.eval, l.labels, ga.WarmStart,
			algorithms.DeriveRand(algorithms.NewRand(l.args.Seed), warmStartStream))
		logger.V(2).Info("Seeded initial population", "seeds", len(config.Seeds), "bestSeedFitness", fittestSeed(config.Seeds))
	}

	budget := algorithms.NewBudget(l.clock, l.args.MaxTime.Duration)
	search, err := algorithms.NewGeneticSearch(config, l.eval, l.labels, algorithms.NewRand(l.args.Seed))
	if err != nil {
		return nil, l.fail(span, v1alpha1.EngineGenetic, err)
	}

	every := progressInterval(config.MaxGenerations)
	reason, runErr := algorithms.Run(ctx, search, budget, func() {
		if gen := search.Steps(); gen%every == 0 {
			best := search.Best()
			logger.V(3).Info("Generation progress", "generation", gen, "maxGenerations", config.MaxGenerations,
				"bestFitness", best.Fitness, "conflicts", best.ConflictCount, "chromaticNumber", best.ChromaticNumber)
		}
	})

	history := search.History()
	result := &Result{
		Engine:        v1alpha1.EngineGenetic,
		Elapsed:       budget.Elapsed(),
		Steps:         search.Steps(),
		Best:          search.Best().Clone(),
		History:       append([]float64(nil), history.Values()...),
		HistoryStride: history.Stride(),
		StopReason:    reason,
		Warning:       l.warning,
	}
	l.finish(span, logger, result, runErr)
	return result, runErr
}

// RunAnnealing runs Restarts independent annealing trajectories and keeps
// the best. Trajectories run concurrently, each on its own derived stream.
func (l *Labeler) RunAnnealing(ctx context.Context) (*Result, error) {
	ctx, span := l.startSpan(ctx, "Labeler.RunAnnealing")
	defer span.End()
	logger := l.logger

	sa := l.args.Annealing
	if sa == nil {
		return nil, l.fail(span, v1alpha1.EngineAnnealing, &framework.ConfigError{Err: fmt.Errorf("annealing args are required")})
	}
	config := algorithms.AnnealingConfig{
		InitialTemperature: sa.Temperature,
		CoolingFactor:      sa.CoolingFactor,
		MaxIterations:      sa.MaxIterations,
		MinTemperature:     sa.MinTemperature,
		Floor:              algorithms.CoolingFloor(sa.CoolingFloor),
	}
	restarts := max(sa.Restarts, 1)
	logger.V(2).Info("Starting annealing search",
		"temperature", config.InitialTemperature, "coolingFactor", config.CoolingFactor,
		"maxIterations", config.MaxIterations, "minTemperature", config.MinTemperature,
		"coolingFloor", config.Floor, "restarts", restarts, "seed", l.args.Seed)

	budget := algorithms.NewBudget(l.clock, l.args.MaxTime.Duration)
	base := algorithms.NewRand(l.args.Seed)
	searches := make([]*algorithms.AnnealingSearch, restarts)
	for i := range searches {
		s, err := algorithms.NewAnnealingSearch(config, l.eval, l.labels, algorithms.DeriveRand(base, uint64(i)))
		if err != nil {
			return nil, l.fail(span, v1alpha1.EngineAnnealing, err)
		}
		searches[i] = s
	}

	every := progressInterval(config.MaxIterations)
	reasons := make([]algorithms.StopReason, restarts)
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range searches {
		i, s := i, s
		g.Go(func() error {
			trajectoryLogger := logger.WithValues("restart", i)
			reason, err := algorithms.Run(gctx, s, budget, func() {
				if it := s.Steps(); it%every == 0 {
					trajectoryLogger.V(3).Info("Iteration progress", "iteration", it, "maxIterations", config.MaxIterations,
						"temperature", s.Temperature(), "bestFitness", s.Best().Fitness)
				}
			})
			reasons[i] = reason
			return err
		})
	}
	runErr := g.Wait()

	winner := 0
	for i, s := range searches {
		if s.Best().Fitness > searches[winner].Best().Fitness {
			winner = i
		}
	}
	best := searches[winner]
	history := best.History()
	result := &Result{
		Engine:        v1alpha1.EngineAnnealing,
		Elapsed:       budget.Elapsed(),
		Steps:         best.Steps(),
		Temperature:   best.Temperature(),
		Best:          best.Best().Clone(),
		History:       append([]float64(nil), history.Values()...),
		HistoryStride: history.Stride(),
		StopReason:    reasons[winner],
		Warning:       l.warning,
	}
	if restarts > 1 {
		logger.V(2).Info("Selected best trajectory", "restart", winner, "fitness", result.Best.Fitness)
	}
	l.finish(span, logger, result, runErr)
	return result, runErr
}

// warmStartStream keeps the greedy seed orders off the engine's streams.
const warmStartStream = 1 << 32

func fittestSeed(seeds []*framework.Labeling) float64 {
	best := 0.0
	for _, l := range seeds {
		best = max(best, l.Fitness)
	}
	return best
}

// progressInterval logs about ten progress lines per run.
func progressInterval(maxSteps int) int {
	return max(maxSteps/10, 1)
}

func (l *Labeler) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("labeling.engine", string(l.args.Engine)),
		attribute.Int("labeling.vertices", l.graph.VertexCount()),
		attribute.Int("labeling.edges", l.graph.EdgeCount()),
		attribute.Int("labeling.fixed", l.graph.FixedCount()),
		attribute.Int("labeling.h", l.args.H),
		attribute.Int("labeling.k", l.args.K),
		attribute.Int64("labeling.seed", int64(l.args.Seed)),
	))
}

func (l *Labeler) fail(span trace.Span, engine v1alpha1.Engine, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	runsTotal.WithLabelValues(string(engine), outcomeError).Inc()
	return err
}

func (l *Labeler) finish(span trace.Span, logger klog.Logger, r *Result, runErr error) {
	span.SetAttributes(
		attribute.Int("labeling.steps", r.Steps),
		attribute.Float64("labeling.fitness", r.Best.Fitness),
		attribute.Int("labeling.conflicts", r.Best.ConflictCount),
		attribute.Int("labeling.chromatic_number", r.Best.ChromaticNumber),
		attribute.Bool("labeling.correct", r.Best.Correct),
		attribute.String("labeling.stop_reason", string(r.StopReason)),
	)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	observeRun(r, runErr)

	logger.V(1).Info("Search finished",
		"elapsed", r.Elapsed, "steps", r.Steps, "stopReason", r.StopReason,
		"fitness", r.Best.Fitness, "correct", r.Best.Correct,
		"conflicts", r.Best.ConflictCount, "chromaticNumber", r.Best.ChromaticNumber)
}

// RandomSeed returns a time based seed for runs that did not request one.
func RandomSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
