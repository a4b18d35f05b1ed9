package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interview-coach/coach-pipeline/orchestrator"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <session-id>",
		Short: "Show the latest analysis of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := setup()
			if err != nil {
				return err
			}
			store, closeStore, err := newStore(cmd.Context(), conf)
			if err != nil {
				return err
			}
			defer closeStore()

			p := orchestrator.NewPipeline(conf, nil, nil, store, log.WithField("component", "orchestrator"))
			rep, err := p.Report(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("session %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}
