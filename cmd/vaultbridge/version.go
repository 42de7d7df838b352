package main

import (
	"fmt"

	"github.com/deixis/vaultbridge"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vaultbridge %s\n", vaultbridge.Version)
		},
	}
}
