package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/config"
	"github.com/mondai-quiz/mondai/internal/logging"
	"github.com/mondai-quiz/mondai/internal/store"
)

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. With no subcommand it launches the
// quiz TUI on the set selection.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mondai",
		Short:        "Timed short-answer quizzes in the terminal",
		Long:         "mondai: pick a question set, type your answers against the clock, and compare your times with other players.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, "/")
		},
	}

	root.PersistentFlags().String("config", "", "Path to YAML config (default $XDG_CONFIG_HOME/mondai/config.yaml)")
	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MONDAI_DB env var)")
	root.PersistentFlags().String("api", "", "Base URL of the result aggregation service")
	root.PersistentFlags().String("sets", "", `Question set source: "builtin", a directory, or an http(s) URL`)
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newPlayCmd(),
		newSetsCmd(),
		newResultCmd(),
		newStatsCmd(),
		newServeCmd(),
		newResetCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig layers the config file, environment and flags, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.FromEnv(os.Getenv); err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.API.URL = v
	}
	if v, _ := cmd.Flags().GetString("sets"); v != "" {
		cfg.Sets.Source = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the local database for a subcommand.
func openStore(cfg config.Config) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, "", err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", err
	}
	return st, dbPath, nil
}

// cliLogger logs to stderr; subcommands do not own the terminal.
func cliLogger(cmd *cobra.Command, cfg config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log.Level, cmd.ErrOrStderr())
}
