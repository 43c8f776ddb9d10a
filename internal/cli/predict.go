package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"leaguerank/internal/model"
)

func newPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <name[:cohort]> <name[:cohort]>",
		Short: "Estimate the chance one player beats another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := findPlayerArg(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := findPlayerArg(cmd, args[1])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(PredictResult{
				A:           playerLabel(a.Name, a.Cohort),
				B:           playerLabel(b.Name, b.Cohort),
				Probability: app.Standings.Compare(a, b),
			})
			return nil
		},
	}
}

func findPlayerArg(cmd *cobra.Command, arg string) (*model.Player, error) {
	name, cohort, hasCohort := strings.Cut(arg, ":")
	return findPlayer(cmd.Context(), name, cohort, hasCohort)
}
