package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/tracing"
)

// NewCommand creates the radiolabel root command writing results to out.
func NewCommand(out io.Writer) *cobra.Command {
	o := &Options{out: out}
	cmd := &cobra.Command{
		Use:   "radiolabel",
		Short: "Search L(h,k) labelings of graphs",
		Long: `radiolabel searches for L(h,k) labelings: adjacent vertices differ by at
least h, vertices at distance two by at least k. Two engines are available,
an island genetic algorithm (ga) and simulated annealing (sa).`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	o.AddFlags(cmd.PersistentFlags())
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newGeneticCommand(o),
		newAnnealingCommand(o),
		newRunCommand(o),
		newServeCommand(o),
		newGenerateCommand(o),
	)
	return cmd
}

// traced wraps run with tracer provider setup and shutdown.
func (o *Options) traced(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		shutdown, err := tracing.Init(cmd.Context(), o.Tracing)
		if err != nil {
			return &framework.ConfigError{Err: err}
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				klog.FromContext(cmd.Context()).Error(err, "Failed to shut down tracing")
			}
		}()
		return run(cmd, args)
	}
}

// HandleError prints a diagnostic naming the kind of err and returns the
// process exit code.
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var inputErr *framework.InputFormatError
	switch {
	case errors.As(err, &inputErr):
		fmt.Fprintf(w, "invalid input file: %v\n", inputErr)
	case errors.Is(err, framework.ErrConfig):
		fmt.Fprintf(w, "invalid configuration: %v\n", err)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "canceled")
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return 1
}
