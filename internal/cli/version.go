package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(build Build) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lockkeys %s\n", build.Version)
			fmt.Fprintf(out, "Commit: %s\n", build.Commit)
			fmt.Fprintf(out, "Built: %s\n", build.Date)
		},
	}
}
