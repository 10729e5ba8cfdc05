package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"tx-mentions-bot/internal/insight"
	mcpclient "tx-mentions-bot/internal/mcp"

	"github.com/tmc/langchaingo/tools"
)

// mcpTool adapts one discovered MCP tool to the langchaingo tool
// interface. Input is the raw JSON argument object from the model.
type mcpTool struct {
	client *mcpclient.HTTPClient
	name   string
	desc   string
}

func (t mcpTool) Name() string        { return t.name }
func (t mcpTool) Description() string { return t.desc }
func (t mcpTool) Call(ctx context.Context, input string) (string, error) {
	var a map[string]any
	_ = json.Unmarshal([]byte(input), &a)
	return t.client.CallTool(t.name, a)
}

// DiscoverTools lists the tools an MCP HTTP endpoint advertises and wraps
// each as an agent tool, embedding the input schema in the description to
// guide the model.
func DiscoverTools(client *mcpclient.HTTPClient) ([]tools.Tool, error) {
	raw, err := client.ListTools()
	if err != nil {
		return nil, err
	}
	out := make([]tools.Tool, 0, len(raw))
	for _, t := range raw {
		name, _ := t["name"].(string)
		if name == "" {
			continue
		}
		description, _ := t["description"].(string)
		if schemaVal, ok := t["inputSchema"]; ok && schemaVal != nil {
			if b, err := json.Marshal(schemaVal); err == nil {
				description = fmt.Sprintf("%s\nInput JSON must match schema: %s", description, string(b))
			}
		}
		out = append(out, mcpTool{client: client, name: name, desc: description})
	}
	return out, nil
}

// analyzeTool resolves a transaction hash through the Insight API
// directly, without going through an MCP hop.
type analyzeTool struct {
	client *insight.Client
}

func (t analyzeTool) Name() string { return "analyze_transaction" }
func (t analyzeTool) Description() string {
	return `Analyze a transaction hash to get raw transaction data. Input JSON: {"tx_hash":"0x...","chain_id":1}`
}

func (t analyzeTool) Call(ctx context.Context, input string) (string, error) {
	var a struct {
		TxHash  string `json:"tx_hash"`
		ChainID int    `json:"chain_id"`
	}
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		return "", fmt.Errorf("analyze_transaction input: %w", err)
	}
	if a.TxHash == "" {
		return "", fmt.Errorf("analyze_transaction: tx_hash is required")
	}
	if a.ChainID == 0 {
		a.ChainID = 1
	}
	return t.client.ResolveTransaction(ctx, a.TxHash, a.ChainID)
}

// NewAnalyzeTool wraps an Insight client as the agent's native
// transaction-resolution tool.
func NewAnalyzeTool(client *insight.Client) tools.Tool {
	return analyzeTool{client: client}
}
