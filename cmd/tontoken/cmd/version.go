package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ModernExodus/tontoken/lib/version"
)

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of build",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			if c.Flags().Changed("format") {
				printOutput(c, version.Get())
				return
			}
			fmt.Println(version.Get())
		},
	}
	addFormatFlag(versionCmd)

	rootCmd.AddCommand(versionCmd)
}
