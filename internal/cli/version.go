package cli

import (
	"fmt"

	"boardscan/internal/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "boardscan version %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
