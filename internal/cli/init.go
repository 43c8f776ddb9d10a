package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	filestorage "leaguerank/internal/storage/file"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty league data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.StorageType != "file" {
				return fmt.Errorf("init only applies to the file backend, storage is %q", cfg.StorageType)
			}
			if err := filestorage.Init(cfg.DataDir); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Initialized league data in %s", cfg.DataDir))
			return nil
		},
	}
}
