package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hitpulse/internal/config"
)

// main is the entry point of hitpulse. The serve command runs the campaign
// API and the traffic scheduler; migrate and seed prepare storage. Errors
// are logged through the configured logger, which PersistentPreRunE also
// installs as the slog default.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "hitpulse",
		Short:         "Campaign-driven website traffic generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.logger = cfg.Log.New(os.Stdout).With(slog.String("env", cfg.Env))
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.AddCommand(a.serveCmd(), a.migrateCmd(), a.seedCmd())
	return root
}
