package cmd

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"hardware-mapper/service"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve register_mapping, list_mappings and list_boards over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			log.Printf("🔌 MCP server ready on stdio")
			server := service.NewMCPServer(a.Catalog, a.Repository).Server()
			return server.Run(ctx, &mcp.StdioTransport{})
		},
	}
}
