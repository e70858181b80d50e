package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/util"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
	"github.com/borsosbarna/graph-labeling/pkg/tracing"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Options holds the flags shared by every subcommand.
type Options struct {
	Seed     uint64
	Format   string
	Output   string
	PlotFile string

	ChromaticPolicy string
	ConflictWeight  float64
	ChromaticWeight float64
	ChromaticBound  int

	Tracing tracing.Config

	out io.Writer
}

// AddFlags registers the shared flags on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.Uint64Var(&o.Seed, "seed", 0, "Random seed. A time based seed is used when unset.")
	fs.StringVar(&o.Format, "format", "", "Graph file format, plain or backbone. Defaults to the variant of the command.")
	fs.StringVarP(&o.Output, "output", "o", OutputText, "Result format, text or json.")
	fs.StringVar(&o.PlotFile, "plot", "", "Write the fitness history chart to this HTML file.")

	fs.StringVar(&o.ChromaticPolicy, "chromatic-policy", "", "Chromatic number policy, DistinctCount or MaxLabel.")
	fs.Float64Var(&o.ConflictWeight, "conflict-weight", 0, "Fitness weight of the conflict term.")
	fs.Float64Var(&o.ChromaticWeight, "chromatic-weight", 0, "Fitness weight of the chromatic term.")
	fs.IntVar(&o.ChromaticBound, "chromatic-bound", 0, "Normalization bound of the chromatic term.")

	fs.StringVar(&o.Tracing.CollectorEndpoint, "otel-collector-endpoint", "", "OTLP/gRPC collector endpoint. Tracing is disabled when empty.")
	fs.BoolVar(&o.Tracing.Insecure, "otel-insecure", false, "Connect to the collector without TLS.")
	fs.StringVar(&o.Tracing.ServiceName, "otel-service-name", tracing.DefaultServiceName, "Service name reported with spans.")
	fs.Float64Var(&o.Tracing.SampleRate, "otel-sample-rate", 1, "Fraction of runs traced.")
}

// applyOverrides copies the explicitly set shared flags into args.
func (o *Options) applyOverrides(fs *pflag.FlagSet, args *v1alpha1.LabelingArgs) {
	if fs.Changed("seed") {
		args.Seed = o.Seed
	} else if args.Seed == 0 {
		args.Seed = labeling.RandomSeed()
	}
	if args.Evaluator == nil {
		args.Evaluator = &v1alpha1.EvaluatorArgs{}
	}
	if fs.Changed("chromatic-policy") {
		args.Evaluator.ChromaticPolicy = o.ChromaticPolicy
	}
	if fs.Changed("conflict-weight") {
		w := o.ConflictWeight
		args.Evaluator.ConflictWeight = &w
	}
	if fs.Changed("chromatic-weight") {
		w := o.ChromaticWeight
		args.Evaluator.ChromaticWeight = &w
	}
	if fs.Changed("chromatic-bound") {
		args.Evaluator.ChromaticBound = o.ChromaticBound
	}
}

func (o *Options) format(fallback graphio.Format) (graphio.Format, error) {
	if o.Format == "" {
		return fallback, nil
	}
	f, err := graphio.ParseFormat(o.Format)
	if err != nil {
		return "", &framework.ConfigError{Err: err}
	}
	return f, nil
}

// execute loads the graph, runs the engine and reports. A canceled run still
// reports its partial result.
func (o *Options) execute(cmd *cobra.Command, args *v1alpha1.LabelingArgs, path string, fallback graphio.Format) error {
	if o.Output != OutputText && o.Output != OutputJSON {
		return &framework.ConfigError{Err: fmt.Errorf("unknown output %q, want %q or %q", o.Output, OutputText, OutputJSON)}
	}
	format, err := o.format(fallback)
	if err != nil {
		return err
	}
	o.applyOverrides(cmd.Flags(), args)
	v1alpha1.Default(args)

	ctx := cmd.Context()
	g, err := readGraph(path, format)
	if err != nil {
		return err
	}
	l, err := labeling.New(ctx, args, g)
	if err != nil {
		return err
	}
	result, runErr := l.Run(ctx)
	if result == nil {
		return runErr
	}

	if err := WriteReport(o.out, NewReport(result, args.Seed), o.Output); err != nil {
		return err
	}
	if o.PlotFile != "" {
		series := util.HistorySeries{Name: string(result.Engine), Values: result.History, Stride: result.HistoryStride}
		if err := util.PlotHistoryFile(o.PlotFile, fmt.Sprintf("%s fitness history", result.Engine), series); err != nil {
			return fmt.Errorf("failed to plot history: %w", err)
		}
		klog.FromContext(ctx).V(1).Info("Wrote fitness history chart", "file", o.PlotFile)
	}
	return runErr
}

func readGraph(path string, format graphio.Format) (*framework.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &framework.InputFormatError{Err: err}
	}
	defer f.Close()
	return graphio.Parse(f, format)
}

// rangeArgs reports a wrong argument count as a configuration error.
func rangeArgs(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			if minArgs == maxArgs {
				return &framework.ConfigError{Err: fmt.Errorf("%s accepts %d arg(s), received %d", cmd.Name(), minArgs, len(args))}
			}
			return &framework.ConfigError{Err: fmt.Errorf("%s accepts between %d and %d arg(s), received %d", cmd.Name(), minArgs, maxArgs, len(args))}
		}
		return nil
	}
}

// positional parses typed positional arguments, collecting every failure.
type positional struct {
	args []string
	errs field.ErrorList
}

func (p *positional) int(i int, name string) int {
	v, err := strconv.Atoi(p.args[i])
	if err != nil {
		p.errs = append(p.errs, field.Invalid(field.NewPath(name), p.args[i], "must be an integer"))
	}
	return v
}

func (p *positional) float(i int, name string) float64 {
	v, err := strconv.ParseFloat(p.args[i], 64)
	if err != nil {
		p.errs = append(p.errs, field.Invalid(field.NewPath(name), p.args[i], "must be a number"))
	}
	return v
}

// seconds reads a wall-clock budget in (possibly fractional) seconds.
func (p *positional) seconds(i int, name string) time.Duration {
	return time.Duration(p.float(i, name) * float64(time.Second))
}

func (p *positional) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &framework.ConfigError{Err: p.errs.ToAggregate()}
}
