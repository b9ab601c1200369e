package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediastudio/internal/database"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(a.cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(db)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(a.cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := database.MigrationStatus(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	})
	return cmd
}
