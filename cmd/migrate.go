package cmd

import (
	"fmt"

	"parking-marketplace/pkg/database"
	"parking-marketplace/pkg/utils"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or revert the PostgreSQL schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd); err != nil {
				return err
			}
			config, err := utils.LoadConfig(envFile(cmd))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := database.RunMigrations(config.Database.PostgresDSN(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s applied\n", args[0])
			return nil
		},
	}
}
