package main

import (
	"fmt"

	"github.com/aretw0/valueprop/internal/presentation/graph"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the wizard flow as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the five steps and their navigation.
A running server also serves it on /graph with the live session highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(wizard.Steps(), nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
