package main

import (
	"fmt"

	"github.com/nkp491/surehelp/internal/bootstrap"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := bootstrap.MigrateAll(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	},
}
