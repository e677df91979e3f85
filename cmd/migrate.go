package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migratePrune bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply store schema migrations",
	Long:  "Creates or updates the business, catalog, and page cache tables for the configured store driver.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}
		zap.L().Info("all migrations applied successfully")

		if migratePrune {
			n, err := st.DeleteExpiredCollections(ctx)
			if err != nil {
				return eris.Wrap(err, "prune expired collections")
			}
			zap.L().Info("expired collections pruned", zap.Int("deleted", n))
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migratePrune, "prune", false, "also delete expired cached page collections")
	rootCmd.AddCommand(migrateCmd)
}
