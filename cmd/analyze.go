package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interview-coach/coach-pipeline/orchestrator"
)

func newAnalyzeTextCmd() *cobra.Command {
	var (
		transcript string
		file       string
		role       string
		questionID int
		keyPoints  []string
		duration   float64
		session    string
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "analyze-text",
		Short: "Score a transcript without audio",
		Long:  "Score a transcript given inline, from a file or on stdin against a bank question or explicit key points, and print the analysis JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTranscript(cmd.InOrStdin(), transcript, file)
			if err != nil {
				return err
			}
			conf, log, err := setup()
			if err != nil {
				return err
			}
			bank, err := loadBank(conf)
			if err != nil {
				return err
			}
			var store orchestrator.Store
			if save {
				s, closeStore, err := newStore(cmd.Context(), conf)
				if err != nil {
					return err
				}
				defer closeStore()
				store = s
			}

			p := orchestrator.NewPipeline(conf, newAnalyzer(conf, log), bank, store, log.WithField("component", "orchestrator"))
			rec, err := p.AnalyzeText(cmd.Context(), orchestrator.TextJob{
				SessionID:  session,
				Role:       role,
				QuestionID: questionID,
				KeyPoints:  keyPoints,
				Transcript: text,
				DurationS:  duration,
			})
			if err != nil {
				return err
			}
			if save {
				if err := p.Save(cmd.Context(), rec); err != nil {
					log.WithError(err).Warn("analysis not saved")
				}
				return printJSON(cmd.OutOrStdout(), rec)
			}
			return printJSON(cmd.OutOrStdout(), rec.Metrics)
		},
	}
	cmd.Flags().StringVar(&transcript, "transcript", "", "transcript text")
	cmd.Flags().StringVar(&file, "file", "", "read the transcript from a file (- for stdin)")
	cmd.Flags().StringVar(&role, "role", "SWE", "interview role")
	cmd.Flags().IntVar(&questionID, "question", 1, "question id in the bank")
	cmd.Flags().StringArrayVar(&keyPoints, "key-point", nil, "rubric key point, repeatable; overrides --question")
	cmd.Flags().Float64Var(&duration, "duration", 60, "answer duration in seconds")
	cmd.Flags().StringVar(&session, "session", "", "session id (generated when empty)")
	cmd.Flags().BoolVar(&save, "save", false, "store the analysis and print the full record")
	return cmd
}

func readTranscript(stdin io.Reader, inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", errors.New("use only one of --transcript and --file")
	case inline != "":
		return inline, nil
	case file == "" || file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	default:
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
}
