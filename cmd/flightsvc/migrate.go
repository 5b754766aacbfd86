package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cx-tal-miterani/flight-reservation/internal/config"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}
