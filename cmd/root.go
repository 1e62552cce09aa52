package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagEnvFile     = "env-file"
	flagPort        = "port"
	flagDebug       = "debug"
	flagDBDriver    = "db-driver"
	flagDatabaseURL = "database-url"
)

// Execute runs the parkingd command tree.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "parkingd: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "parkingd",
		Short:         "Parking marketplace wallet ledger and booking payment API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(flagEnvFile, ".env", "optional .env file with configuration")
	flags.String(flagPort, "", "HTTP listen port (PORT)")
	flags.Bool(flagDebug, false, "enable debug logging (DEBUG)")
	flags.String(flagDBDriver, "", "store implementation: pgx or gorm (DB_DRIVER)")
	flags.String(flagDatabaseURL, "", "database URL, postgres:// or sqlite:// (DATABASE_URL)")

	cmd.AddCommand(newServeCommand(), newMigrateCommand())
	return cmd
}

// bindFlags lets explicitly set flags override the environment and .env values.
func bindFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		"PORT":         flagPort,
		"DEBUG":        flagDebug,
		"DB_DRIVER":    flagDBDriver,
		"DATABASE_URL": flagDatabaseURL,
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func envFile(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString(flagEnvFile)
	return path
}
