package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ModernExodus/tontoken/cmd/tontoken/cmd/key"
)

func init() {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the keypairs of accounts",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			c.Help()
		},
	}

	keyCmd.AddCommand(key.GenerateCmd)
	rootCmd.AddCommand(keyCmd)
}
