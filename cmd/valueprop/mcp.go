package main

import (
	"log"
	"os"

	"github.com/aretw0/valueprop/internal/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the wizard as MCP tools over Standard Input/Output,
so AI assistants can fill in the value proposition with the user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, logger, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		// Stdout carries JSON-RPC.
		log.SetOutput(os.Stderr)
		logger.Info("Starting valueprop MCP server (stdio)")
		return mcp.NewServer(w, logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
