package cli

import (
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Rebuild all ratings from the event log",
		Long: `Reset every player to priors and reprocess the entire event log in
order. The log itself is untouched; ratings and history are rewritten. Use
this after correcting a logged event or changing rating parameters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Replay.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(summary)
			return nil
		},
	}
}
