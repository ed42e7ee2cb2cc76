package cli

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/lockkeys/internal/config"
)

func newPresetsCommand() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "print the stock behaviors as TOML",
		Long: `
Print every stock behavior, fully expanded, as [[behavior]] tables. With
--defaults, print the configuration used when no config file exists.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.FromPresets()
			if defaults {
				f = config.Default()
			}
			enc := toml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndentTables(true)
			return enc.Encode(f)
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the default configuration")
	return cmd
}
