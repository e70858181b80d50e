package app

import (
	"github.com/spf13/cobra"

	"github.com/borsosbarna/graph-labeling/pkg/server"
)

func newServeCommand(o *Options) *cobra.Command {
	var addr string
	maxRunTime := server.MaxRunTime
	var maxBodyBytes int64 = server.DefaultMaxBodyBytes
	maxVertices := server.DefaultMaxVertices
	maxLabels := server.DefaultMaxLabels
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engines over HTTP",
		Long: `Serve POST /api/GA and POST /api/SA, plus /healthz and Prometheus
metrics on /metrics.`,
		Args: rangeArgs(0, 0),
		RunE: o.traced(func(cmd *cobra.Command, _ []string) error {
			s := server.New(cmd.Context(),
				server.WithMaxRunTime(maxRunTime),
				server.WithMaxBodyBytes(maxBodyBytes),
				server.WithMaxVertices(maxVertices),
				server.WithMaxLabels(maxLabels),
			)
			return s.ListenAndServe(cmd.Context(), addr)
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address.")
	cmd.Flags().DurationVar(&maxRunTime, "max-run-time", maxRunTime, "Largest maxTime a request may ask for.")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", maxBodyBytes, "Largest request body accepted.")
	cmd.Flags().IntVar(&maxVertices, "max-vertices", maxVertices, "Largest graph accepted, in vertices.")
	cmd.Flags().IntVar(&maxLabels, "max-labels", maxLabels, "Largest search state accepted: individuals or restarts times vertices.")
	return cmd
}
