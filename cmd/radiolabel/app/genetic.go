package app

import (
	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

func newGeneticCommand(o *Options) *cobra.Command {
	var flags v1alpha1.GeneticArgs
	cmd := &cobra.Command{
		Use:   "ga H K FILE MAX_LABEL ISLANDS ISLAND_SIZE MUTATION_CHANCE ELITES MAX_GENERATIONS MAX_TIME",
		Short: "Run the island genetic algorithm",
		Long: `Run the island genetic algorithm on FILE, a graph in the backbone format
unless --format says otherwise. Labels are drawn from [1, MAX_LABEL].
MAX_TIME is the wall-clock budget in seconds.`,
		Example: "  radiolabel ga 2 1 graph.in 12 4 100 0.2 2 1000 10 --seed=42",
		Args:    rangeArgs(10, 10),
		RunE: o.traced(func(cmd *cobra.Command, args []string) error {
			p := &positional{args: args}
			largs := &v1alpha1.LabelingArgs{
				Engine:   v1alpha1.EngineGenetic,
				H:        p.int(0, "h"),
				K:        p.int(1, "k"),
				MaxLabel: p.int(3, "maxLabel"),
				Genetic: &v1alpha1.GeneticArgs{
					Islands:            p.int(4, "islands"),
					IslandSize:         p.int(5, "islandSize"),
					MutationChance:     p.float(6, "mutationChance"),
					Elites:             p.int(7, "elites"),
					MaxGenerations:     p.int(8, "maxGenerations"),
					TournamentFraction: flags.TournamentFraction,
					Crossover:          flags.Crossover,
					Parallel:           flags.Parallel,
					WarmStart:          flags.WarmStart,
				},
				MaxTime: metav1.Duration{Duration: p.seconds(9, "maxTime")},
			}
			if err := p.err(); err != nil {
				return err
			}
			return o.execute(cmd, largs, args[2], graphio.FormatBackbone)
		}),
	}
	cmd.Flags().BoolVar(&flags.Parallel, "parallel", false, "Advance islands concurrently.")
	cmd.Flags().StringVar(&flags.Crossover, "crossover", "", "Crossover operator, FitnessProportional or Uniform.")
	cmd.Flags().IntVar(&flags.WarmStart, "warm-start", 0, "Seed this many initial individuals with greedy first-fit labelings.")
	cmd.Flags().Float64Var(&flags.TournamentFraction, "tournament-fraction", 0, "Tournament size as a fraction of the island.")
	return cmd
}
