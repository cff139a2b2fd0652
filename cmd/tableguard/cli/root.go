package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tableguard",
		Short: "Keep an auth library's required database tables in sync",
		Long: `Tableguard inspects the database tables an authentication library's enabled
features require, reports drift against the live schema, and can generate or
apply the DDL that closes it (postgres, mysql, sqlite).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tableguard.yaml)")
	cmd.PersistentFlags().String("driver", "", "database driver (postgres, mysql, sqlite)")
	cmd.PersistentFlags().String("dsn", "", "data source name / connection string")
	cmd.PersistentFlags().String("schema", "", "database schema to inspect (driver default when empty)")
	cmd.PersistentFlags().String("prefix", "account", "table-name prefix")
	cmd.PersistentFlags().StringSlice("features", nil, "enabled feature tags (e.g. base,otp,webauthn)")
	viper.BindPFlag("driver", cmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("dsn", cmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("schema", cmd.PersistentFlags().Lookup("schema"))
	viper.BindPFlag("prefix", cmd.PersistentFlags().Lookup("prefix"))
	viper.BindPFlag("features", cmd.PersistentFlags().Lookup("features"))

	cobra.OnInitialize(initConfig)

	// Add subcommands
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newFeaturesCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	// A local .env feeds the same variables viper reads; missing files are fine.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tableguard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.tableguard")
	}

	viper.SetEnvPrefix("TABLEGUARD")
	viper.AutomaticEnv()
	viper.ReadInConfig() // Ignore error - config file is optional
}
