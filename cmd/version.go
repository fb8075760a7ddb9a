package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "smenu %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
