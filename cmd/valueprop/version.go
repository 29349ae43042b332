package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/valueprop"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of valueprop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "valueprop version %s\n", strings.TrimSpace(valueprop.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
