package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"leaguerank/internal/services/match"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Event submission commands",
	}

	cmd.AddCommand(newMatchAddCmd())

	return cmd
}

func newMatchAddCmd() *cobra.Command {
	var date, rosterFile string

	cmd := &cobra.Command{
		Use:   "add [rank:name[:cohort]...]",
		Short: "Submit one event's ranked results",
		Long: `Submit a finished event. Entrants come either from a roster CSV
(--roster, rank,name[,cohort] rows) or as positional rank:name[:cohort]
arguments. Equal ranks are ties. The whole event commits or none of it does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayForFlag(date)
			if err != nil {
				return err
			}

			entrants, err := collectEntrants(rosterFile, args)
			if err != nil {
				return err
			}

			result, err := app.Matches.Process(cmd.Context(), match.Request{
				Day:      day,
				Entrants: entrants,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&rosterFile, "roster", "", "Roster CSV file (rank,name[,cohort] rows)")

	return cmd
}

func collectEntrants(rosterFile string, args []string) ([]match.Entrant, error) {
	if rosterFile != "" && len(args) > 0 {
		return nil, fmt.Errorf("use either --roster or positional entrants, not both")
	}

	if rosterFile != "" {
		f, err := os.Open(rosterFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return match.ParseRosterCSV(f)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no entrants: pass rank:name[:cohort] arguments or --roster")
	}
	entrants := make([]match.Entrant, 0, len(args))
	for _, arg := range args {
		entrant, err := match.ParseEntrant(arg)
		if err != nil {
			return nil, err
		}
		entrants = append(entrants, entrant)
	}
	return entrants, nil
}
