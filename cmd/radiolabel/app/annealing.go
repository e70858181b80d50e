package app

import (
	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

func newAnnealingCommand(o *Options) *cobra.Command {
	var flags v1alpha1.AnnealingArgs
	cmd := &cobra.Command{
		Use:   "sa H K FILE [MAX_LABEL] TEMPERATURE COOLING_FACTOR MAX_ITERATIONS MAX_TIME",
		Short: "Run simulated annealing",
		Long: `Run simulated annealing on FILE. With MAX_LABEL the graph is read in the
backbone format and labels are drawn from [1, MAX_LABEL]. Without it the graph
is read in the plain format and the label range follows the graph density.
MAX_TIME is the wall-clock budget in seconds.`,
		Example: "  radiolabel sa 2 1 graph.in 1 0.999 100000 10\n  radiolabel sa 2 1 backbone.in 12 1 0.999 100000 10 --restarts=4",
		Args:    rangeArgs(7, 8),
		RunE: o.traced(func(cmd *cobra.Command, args []string) error {
			p := &positional{args: args}
			format := graphio.FormatPlain
			largs := &v1alpha1.LabelingArgs{
				Engine: v1alpha1.EngineAnnealing,
				H:      p.int(0, "h"),
				K:      p.int(1, "k"),
			}
			rest := 3
			if len(args) == 8 {
				largs.MaxLabel = p.int(3, "maxLabel")
				format = graphio.FormatBackbone
				rest = 4
			}
			largs.Annealing = &v1alpha1.AnnealingArgs{
				Temperature:    p.float(rest, "temperature"),
				CoolingFactor:  p.float(rest+1, "coolingFactor"),
				MaxIterations:  p.int(rest+2, "maxIterations"),
				MinTemperature: flags.MinTemperature,
				CoolingFloor:   flags.CoolingFloor,
				Restarts:       flags.Restarts,
			}
			largs.MaxTime = metav1.Duration{Duration: p.seconds(rest+3, "maxTime")}
			if err := p.err(); err != nil {
				return err
			}
			return o.execute(cmd, largs, args[2], format)
		}),
	}
	cmd.Flags().StringVar(&flags.CoolingFloor, "cooling-floor", "", "What happens below the minimum temperature: Zero stops, Epsilon keeps iterating.")
	cmd.Flags().Float64Var(&flags.MinTemperature, "min-temperature", 0, "Temperature floor.")
	cmd.Flags().IntVar(&flags.Restarts, "restarts", 0, "Independent trajectories run concurrently, best one wins.")
	return cmd
}
