package mcpclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

// HTTPClient is a minimal JSON-RPC client for a streamable-HTTP MCP
// endpoint. The agent uses it to discover and call the blockchain tools
// served by cmd/mcpproxy.
type HTTPClient struct {
	base string
	hc   *http.Client
}

// NewHTTPClient connects to an MCP endpoint and sends the initialize
// handshake. The handshake result is not needed by stateless servers, so
// its error is ignored.
func NewHTTPClient(base string) *HTTPClient {
	c := &http.Client{Timeout: 60 * time.Second}
	_ = post(c, base, map[string]any{
		"jsonrpc": "2.0", "id": 1, "method": "initialize",
		"params": map[string]any{
			"protocolVersion": "2025-06-18",
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "tx-mentions-bot", "version": "0.1"},
		},
	})
	return &HTTPClient{base: base, hc: c}
}

// CallTool invokes a named tool and returns the first text content item.
func (m *HTTPClient) CallTool(name string, args map[string]any) (string, error) {
	var out struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if _, err := postJSON(m.hc, m.base, map[string]any{
		"jsonrpc": "2.0", "id": 2, "method": "tools/call",
		"params": map[string]any{"name": name, "arguments": args},
	}, &out); err != nil {
		return "", err
	}
	if len(out.Result.Content) == 0 {
		return "", nil
	}
	return out.Result.Content[0].Text, nil
}

// ListTools returns the raw tool descriptors the server advertises.
func (m *HTTPClient) ListTools() ([]map[string]any, error) {
	var out struct {
		Result struct {
			Tools []map[string]any `json:"tools"`
		} `json:"result"`
	}
	if _, err := postJSON(m.hc, m.base, map[string]any{
		"jsonrpc": "2.0", "id": 3, "method": "tools/list",
	}, &out); err != nil {
		return nil, err
	}
	return out.Result.Tools, nil
}

func post(c *http.Client, url string, body any) error {
	_, err := postJSON(c, url, body, nil)
	return err
}

func postJSON(c *http.Client, url string, body any, out any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if out == nil {
			resp.Body.Close()
		}
	}()
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}
