package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/algorithms"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/benchmarks"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

var generatorKinds = []string{"path", "cycle", "complete", "star", "wheel", "grid", "petersen", "random"}

func newGenerateCommand(o *Options) *cobra.Command {
	var (
		n, cols int
		p       float64
	)
	cmd := &cobra.Command{
		Use:       "generate KIND",
		Short:     "Write a generated graph in the plain format",
		Long:      "Write a generated graph to stdout. KIND is one of " + strings.Join(generatorKinds, ", ") + ".",
		Example:   "  radiolabel generate random -n 50 -p 0.1 --seed=7 > random50.in",
		ValidArgs: generatorKinds,
		Args:      rangeArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := generate(args[0], n, cols, p, o.Seed)
			if err != nil {
				return &framework.ConfigError{Err: err}
			}
			format, err := o.format(graphio.FormatPlain)
			if err != nil {
				return err
			}
			return graphio.Write(o.out, g, format)
		},
	}
	cmd.Flags().IntVarP(&n, "vertices", "n", 10, "Vertex count. For star the leaf count, for grid the row count.")
	cmd.Flags().IntVar(&cols, "cols", 10, "Column count of a grid.")
	cmd.Flags().Float64VarP(&p, "probability", "p", 0.1, "Edge probability of a random graph.")
	return cmd
}

func generate(kind string, n, cols int, p float64, seed uint64) (*framework.Graph, error) {
	switch kind {
	case "path":
		return benchmarks.Path(n)
	case "cycle":
		return benchmarks.Cycle(n)
	case "complete":
		return benchmarks.Complete(n)
	case "star":
		return benchmarks.Star(n)
	case "wheel":
		return benchmarks.Wheel(n)
	case "grid":
		return benchmarks.Grid(n, cols)
	case "petersen":
		return benchmarks.Petersen()
	case "random":
		return benchmarks.RandomSparse(n, p, algorithms.NewRand(seed))
	}
	return nil, fmt.Errorf("unknown graph kind %q, want one of %s", kind, strings.Join(generatorKinds, ", "))
}
