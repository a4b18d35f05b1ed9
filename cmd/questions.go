package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	var (
		role   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, _, err := setup()
			if err != nil {
				return err
			}
			bank, err := loadBank(conf)
			if err != nil {
				return err
			}
			qs := bank.Questions(role)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), qs)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tID\tQUESTION\tKEY POINTS")
			for _, q := range qs {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", q.Role, q.ID, q.Text, strings.Join(q.KeyPoints, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "only this role")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
