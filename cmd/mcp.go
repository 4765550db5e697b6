package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonthaphat/sportsdesk/internal/chat"
	mcpserver "github.com/nonthaphat/sportsdesk/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the package assistant and catalog search as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		store, database, err := openStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		engine := chat.NewEngine(engineOptions(cfg, provider, store, loadParents(ctx, database)))

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "sportsdesk MCP server started on stdio (passages=%d)\n", store.Count())

		srv := mcpserver.NewServer(engine, store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
