package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"hitpulse/internal/db"
)

func (a *app) seedCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert inactive demo campaigns for " + db.DemoUserID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			n, err := db.Seed(cmd.Context(), repo, count)
			if err != nil {
				return err
			}
			a.logger.Info("seeded demo campaigns", slog.Int("created", n), slog.String("user_id", db.DemoUserID))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of demo campaigns")
	return cmd
}
