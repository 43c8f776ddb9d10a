package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"leaguerank/internal/dates"
	"leaguerank/internal/services/standings"
)

func newStandingsCmd() *cobra.Command {
	var window int
	var includeInactive bool
	var csvFile string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show the current standings table",
		Long: `Show standings ordered by the conservative rating estimate (rating
minus two deviations). Deviations reflect inactivity since each player's
last event; stored ratings are not modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Standings.Table(cmd.Context(), standings.Options{
				ActiveWindowDays: window,
				IncludeInactive:  includeInactive,
			})
			if err != nil {
				return err
			}

			if csvFile != "" {
				if err := writeStandingsCSV(csvFile, rows); err != nil {
					return err
				}
				out := NewOutput(cfg.Output)
				out.PrintMessage(fmt.Sprintf("Wrote %d rows to %s", len(rows), csvFile))
				return nil
			}

			out := NewOutput(cfg.Output)
			out.Print(rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&window, "window", 0,
		fmt.Sprintf("Active window in days (default %d)", standings.DefaultActiveWindowDays))
	cmd.Flags().BoolVar(&includeInactive, "all", false, "Include players outside the active window")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the table to a CSV file instead of stdout")

	return cmd
}

func writeStandingsCSV(path string, rows []standings.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "name", "cohort", "rating", "rating_deviation", "volatility", "r95_lower", "r95_upper", "last_active"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Name,
			r.Cohort,
			strconv.FormatFloat(r.Rating, 'f', 2, 64),
			strconv.FormatFloat(r.Deviation, 'f', 2, 64),
			strconv.FormatFloat(r.Volatility, 'f', 6, 64),
			strconv.FormatFloat(r.R95Lower, 'f', 2, 64),
			strconv.FormatFloat(r.R95Upper, 'f', 2, 64),
			dates.FormatDay(r.LastActiveDay),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
