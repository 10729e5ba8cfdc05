package agent

import (
	"context"
	"fmt"

	mcpclient "tx-mentions-bot/internal/mcp"
)

// Asker answers a question by calling one answering tool on a stdio MCP
// server. It is the fallback agent when no model provider is configured.
type Asker func(ctx context.Context, text string) (string, error)

// NewAsker returns an Asker bound to an MCP executable and tool name.
func NewAsker(mcpCmd string, mcpTool string) Asker {
	return func(ctx context.Context, text string) (string, error) {
		prompt := fmt.Sprintf("Resolve the blockchain transaction referenced in this request and describe it:\n\n%s\n\nRespond concisely.", text)
		return mcpclient.Ask(ctx, mcpCmd, mcpTool, prompt)
	}
}
