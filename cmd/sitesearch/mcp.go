package main

import (
	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitesearch/registry"
)

func newMCPCmd(a *app) *cobra.Command {
	var useSDK bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the site tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			reg, _, cleanup, err := a.site(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if useSDK {
				return registry.RunMCP(ctx, reg)
			}
			return registry.ServeStream(ctx, reg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&useSDK, "sdk", false, "Use the go-sdk MCP server instead of the line-delimited JSON-RPC loop")
	return cmd
}
