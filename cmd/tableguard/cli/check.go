package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCheckCmd() *cobra.Command {
	var (
		mode        string
		remediation string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the guard the way library bootstrap does",
		Long: `Inspect the live database and apply the configured validation mode and
remediation, exactly as an embedding application would at startup. Exit code
is non-zero only when the mode decides to fail (raise, or a failing custom
outcome) or remediation errors.`,
		Example: `  tableguard check --features base,otp --mode warn
  tableguard check --features base --mode raise --remediation migration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeatures(viper.GetStringSlice("features")); err != nil {
				cmd.SilenceUsage = false
				return err
			}
			if mode != "" {
				viper.Set("mode", mode)
			}
			if remediation != "" {
				viper.Set("remediation", remediation)
			}
			return runCheck()
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "validation mode: silent, warn, error, or raise")
	cmd.Flags().StringVar(&remediation, "remediation", "", "remediation: none, log, migration, create, or sync")

	return cmd
}

func runCheck() error {
	conn, err := openConnector()
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	g, err := newGuard(conn)
	if err != nil {
		return err
	}

	return g.Check(context.Background())
}
