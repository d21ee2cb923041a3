package main

import (
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStorage(db)

			cmd.Println(successStyle.Render("Database schema is up to date"))
			return nil
		},
	}
}
