package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigreer/scsitree/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scsitree version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scsitree %s\n", version.Version)
	},
}
