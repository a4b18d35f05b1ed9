package cmd

import (
	"github.com/spf13/cobra"

	"github.com/interview-coach/coach-pipeline/orchestrator"
)

func newRunCmd() *cobra.Command {
	var (
		role       string
		questionID int
		session    string
	)
	cmd := &cobra.Command{
		Use:   "run <audio>",
		Short: "Transcribe, score and store a recorded answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := setup()
			if err != nil {
				return err
			}
			bank, err := loadBank(conf)
			if err != nil {
				return err
			}
			store, closeStore, err := newStore(cmd.Context(), conf)
			if err != nil {
				return err
			}
			defer closeStore()

			p := orchestrator.NewPipeline(conf, newAnalyzer(conf, log), bank, store, log.WithField("component", "orchestrator"))
			rec, err := p.Run(cmd.Context(), orchestrator.Job{
				SessionID:  session,
				AudioPath:  args[0],
				Role:       role,
				QuestionID: questionID,
			})
			if rec != nil {
				if perr := printJSON(cmd.OutOrStdout(), rec); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&role, "role", "SWE", "interview role")
	cmd.Flags().IntVar(&questionID, "question", 1, "question id in the bank")
	cmd.Flags().StringVar(&session, "session", "", "session id (generated when empty)")
	return cmd
}
