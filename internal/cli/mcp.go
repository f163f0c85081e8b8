package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
	clockfillmcp "github.com/jsandoval/clockfill/internal/mcp"
)

var mcpConfigFlag string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server exposing clockfill tools over stdio",
	Long: `Run an MCP (Model Context Protocol) server over stdio, exposing the
plan_week, fill_week, and list_projects tools so AI assistants can drive the
same planning engine as the CLI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if NewClient == nil || NewRunner == nil {
			return fmt.Errorf("clockfill services not initialized")
		}

		cfg, err := core.LoadConfig(mcpConfigFlag)
		if err != nil {
			return err
		}
		if err := core.ValidateConfig(cfg); err != nil {
			return err
		}

		client := NewClient(integration.ClientConfig{
			APIKey:      cfg.APIKey,
			WorkspaceID: cfg.WorkspaceID,
		})
		runner := NewRunner(client)

		server := clockfillmcp.NewServer(client, runner, cfg, appVersion)
		return server.Run(cmd.Context())
	},
}

func init() {
	mcpCmd.Flags().StringVarP(&mcpConfigFlag, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(mcpCmd)
}
