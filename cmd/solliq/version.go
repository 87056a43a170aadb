package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/solliq"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of solliq",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "solliq version %s\n", strings.TrimSpace(solliq.Version))
		},
	}
}
