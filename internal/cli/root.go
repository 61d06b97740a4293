// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/BartekS5/uni-etl/internal/config"
	"github.com/spf13/cobra"
)

// GlobalOptions override the environment configuration for every command.
type GlobalOptions struct {
	EnvFile  string
	DBDriver string
	DBDSN    string
	Table    string
	LogFile  string
	LogLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "uni-etl",
		Short: "uni-etl - load California universities into a local table",
		Long: `uni-etl fetches the US university list from universities.hipolabs.com,
keeps the entries whose name contains a filter substring, and replaces a
relational table with the reshaped rows.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile == "" {
				return nil
			}
			return config.LoadEnvFile(opts.EnvFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env-file", "", "Extra .env file to load before reading the environment")
	flags.StringVar(&opts.DBDriver, "db-driver", "", "Store driver: sqlite, sqlserver or postgres (env DB_DRIVER)")
	flags.StringVar(&opts.DBDSN, "db", "", "Store DSN; a file path for sqlite (env DB_DSN)")
	flags.StringVarP(&opts.Table, "table", "t", "", "Destination table name (env TABLE_NAME)")
	flags.StringVar(&opts.LogFile, "log-file", "", "Log file path (env LOG_FILE)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (env LOG_LEVEL)")

	rootCmd.AddCommand(NewRunCmd(opts), NewShowCmd(opts), NewServeCmd(opts))

	return rootCmd
}
