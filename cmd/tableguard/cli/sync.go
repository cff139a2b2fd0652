package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newSyncCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Drop and recreate every required table (destructive)",
		Long: `Drop every required table in reverse dependency order, then recreate all of
them. All data in those tables is lost; this exists for dev/test databases
only. Interactive runs are asked to confirm; non-interactive runs (CI, pipes)
must pass --force.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeatures(viper.GetStringSlice("features")); err != nil {
				cmd.SilenceUsage = false
				return err
			}
			return runSync(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")

	return cmd
}

func runSync(cmd *cobra.Command, force bool) error {
	if !force {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("sync is destructive; pass --force when running non-interactively")
		}
		fmt.Fprint(cmd.OutOrStdout(), "This DROPS all required tables and their data. Type 'yes' to continue: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if strings.TrimSpace(line) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	conn, err := openConnector()
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	g, err := newGuard(conn)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := g.DropAll(ctx); err != nil {
		return err
	}
	if err := g.CreateMissing(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Synced required tables.")
	return nil
}
