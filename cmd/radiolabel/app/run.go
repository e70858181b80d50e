package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

func newRunCommand(o *Options) *cobra.Command {
	var configFile, graphFile string
	cmd := &cobra.Command{
		Use:   "run --config FILE --graph FILE",
		Short: "Run an engine configured by a LabelingArgs file",
		Example: `  radiolabel run --config args.yaml --graph graph.in

args.yaml:
  apiVersion: labeling/v1alpha1
  kind: LabelingArgs
  engine: SA
  h: 2
  k: 1
  maxTime: 10s
  annealing:
    temperature: 1
    coolingFactor: 0.999
    maxIterations: 100000`,
		Args: rangeArgs(0, 0),
		RunE: o.traced(func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return &framework.ConfigError{Err: fmt.Errorf("reading config: %w", err)}
			}
			args, err := v1alpha1.LoadLabelingArgs(data)
			if err != nil {
				return err
			}
			format := graphio.FormatPlain
			if args.MaxLabel > 0 {
				format = graphio.FormatBackbone
			}
			return o.execute(cmd, args, graphFile, format)
		}),
	}
	cmd.Flags().StringVar(&configFile, "config", "", "LabelingArgs file in YAML or JSON.")
	cmd.Flags().StringVar(&graphFile, "graph", "", "Graph file.")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
