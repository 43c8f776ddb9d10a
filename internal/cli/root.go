package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"leaguerank/internal/factory"
	redisstorage "leaguerank/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "leaguerank",
		Short: "Rating tracker for a recurring ranked league",
		Long: `leaguerank maintains Glicko-2 ratings for a league that meets in
recurring events. Each event is a single ranked result list; submitting it
updates every entrant's rating, and the full event log can be replayed to
rebuild the standings from scratch.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// init (and help/completion) run before the data directory exists
			switch cmd.Name() {
			case "init", "help", "completion":
				return nil
			}

			factoryCfg := factory.Config{
				StorageType:   cfg.StorageType,
				DataDir:       cfg.DataDir,
				ResolvePolicy: cfg.ResolvePolicy,
				Logger:        newLogger(cfg.Verbose),
			}
			if cfg.StorageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				redisCfg.URL = cfg.RedisURL
				factoryCfg.RedisConfig = &redisCfg
			}

			var err error
			app, err = factory.New(factoryCfg)
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "League data directory (env: LEAGUERANK_DATA)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: file, memory, redis (env: LEAGUERANK_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis backend (env: LEAGUERANK_REDIS)")
	rootCmd.PersistentFlags().StringVar(&cfg.ResolvePolicy, "resolve", cfg.ResolvePolicy, "Ambiguous name policy: fail, newest, oldest (env: LEAGUERANK_RESOLVE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newStandingsCmd())
	rootCmd.AddCommand(newPredictCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
