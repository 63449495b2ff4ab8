package main

import (
	"errors"

	"github.com/spf13/cobra"

	"hitpulse/internal/config"
	"hitpulse/internal/db"
)

func (a *app) migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL schema migrations",
		RunE: func(*cobra.Command, []string) error {
			if a.cfg.Storage != config.StoragePostgres {
				return errors.New("migrations only apply to STORAGE=postgres")
			}
			addr := a.cfg.Psql.Addr.String()
			if down {
				if err := db.Rollback(addr); err != nil {
					return err
				}
				a.logger.Info("migrations rolled back")
				return nil
			}
			if err := db.Migrate(addr); err != nil {
				return err
			}
			a.logger.Info("migrations applied successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revert all migrations instead")
	return cmd
}
