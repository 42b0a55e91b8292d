package main

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/hrygo/portfolioai/internal/version"
	"github.com/hrygo/portfolioai/server/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the knowledge tools and the ask tool over MCP stdio",
		Long:  "Serve the knowledge tools over MCP stdio. The ask, quick_review and draft_followup tools need a configured model; the other tools work without one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prof, err := loadProfile()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), prof, false)
			if err != nil {
				return err
			}
			var opts []mcp.Option
			if a.registry != nil {
				opts = append(opts, mcp.WithSpecialists(a.registry.Specialist))
			}
			server := mcp.NewServer(a.kb, a.provider(), prof.Workflow, version.String(), opts...)
			return server.Run(cmd.Context(), &sdk.StdioTransport{})
		},
	}
}
