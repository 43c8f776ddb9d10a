package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leaguerank/internal/dates"
	"leaguerank/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerHistoryCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name, cohort, date string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player ahead of their first event",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayForFlag(date)
			if err != nil {
				return err
			}

			p, err := app.Players.Register(cmd.Context(), name, cohort, day)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(p)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&cohort, "cohort", "", "Cohort label, e.g. intake year")
	cmd.Flags().StringVar(&date, "date", "", "Registration date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := app.Players.List(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(players)
			return nil
		},
	}
}

func newPlayerHistoryCmd() *cobra.Command {
	var name, cohort string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a player's rating trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findPlayer(cmd.Context(), name, cohort, cmd.Flags().Changed("cohort"))
			if err != nil {
				return err
			}

			samples, err := app.Players.History(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(HistoryResult{Name: p.Name, Cohort: p.Cohort, Samples: samples})
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&cohort, "cohort", "", "Cohort label")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// findPlayer resolves a name to an existing player without ever creating
// one. An explicit --cohort pins the exact identity; a bare name must match
// exactly one player.
func findPlayer(ctx context.Context, name, cohort string, cohortSet bool) (*model.Player, error) {
	if cohortSet {
		return app.Players.Get(ctx, model.DerivePlayerID(name, cohort))
	}

	players, err := app.Players.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*model.Player
	for _, p := range players {
		if p.Name == name {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("player %q: %w", name, model.ErrPlayerNotFound)
	case 1:
		return matches[0], nil
	default:
		cohorts := make([]string, len(matches))
		for i, p := range matches {
			cohorts[i] = p.Cohort
		}
		return nil, fmt.Errorf("player %q in cohorts %s: %w",
			name, strings.Join(cohorts, ", "), model.ErrAmbiguousName)
	}
}

// dayForFlag converts a --date value to a day index, defaulting to today.
func dayForFlag(date string) (int, error) {
	if date == "" {
		return app.Clock.Today(), nil
	}
	return dates.ParseDay(date)
}
