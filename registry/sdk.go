package registry

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// NewMCPServer builds a go-sdk server exposing every registered tool.
// Tools registered afterwards are not included.
func NewMCPServer(r *Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    r.config.ServerInfo.Name,
		Version: r.config.ServerInfo.Version,
	}, nil)

	for _, tool := range r.Tools() {
		mcpTool := tool.Tool
		id := tool.ToolID()
		server.AddTool(&mcpTool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args map[string]any
			if raw := req.Params.Arguments; len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return errorResult(err), nil
				}
			}
			result, err := r.Execute(ctx, id, args)
			if err != nil {
				return errorResult(err), nil
			}
			text, err := json.Marshal(result)
			if err != nil {
				return errorResult(err), nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
			}, nil
		})
	}
	return server
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// RunMCP serves the registry with the go-sdk over stdio until the client
// disconnects or ctx is done.
func RunMCP(ctx context.Context, r *Registry) error {
	r.logger.Info("serving MCP over stdio", zap.Int("tools", len(r.Tools())))
	return NewMCPServer(r).Run(ctx, &mcp.StdioTransport{})
}

// StreamableHandler serves the registry with the go-sdk streamable HTTP
// transport.
func StreamableHandler(r *Registry) http.Handler {
	server := NewMCPServer(r)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
