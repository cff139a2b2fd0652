package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tableguard/tableguard/internal/registry"
)

func newFeaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List known features and the tables they require",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(cmd)
		},
	}

	return cmd
}

func runFeatures(cmd *cobra.Command) error {
	reg := registry.Default()
	prefix := viper.GetString("prefix")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-26s %s\n", "FEATURE", "TABLES")
	fmt.Fprintf(out, "%-26s %s\n", "-------", "------")
	for _, feature := range reg.Features() {
		specs, err := reg.Resolve(prefix, feature)
		if err != nil {
			return err
		}
		for i, spec := range specs {
			name := feature
			if i > 0 {
				name = ""
			}
			fmt.Fprintf(out, "%-26s %s\n", name, spec.Name)
		}
	}
	return nil
}
