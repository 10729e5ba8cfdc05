package insight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultBaseURL is the public thirdweb Insight API endpoint.
const DefaultBaseURL = "https://insight.thirdweb.com/v1"

// Client queries the thirdweb Insight API for raw blockchain data. The
// agent's analyze_transaction tool is backed by it.
type Client struct {
	baseURL   string
	secretKey string
	http      *retryablehttp.Client
}

// NewClient builds an Insight client. secretKey is the thirdweb project
// secret sent as x-secret-key on every request.
func NewClient(baseURL, secretKey string) *Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &Client{baseURL: baseURL, secretKey: secretKey, http: client}
}

// ResolveTransaction resolves a transaction hash on the given chains and
// returns the raw JSON payload as text for the agent to reason over.
func (c *Client) ResolveTransaction(ctx context.Context, txHash string, chainIDs ...int) (string, error) {
	q := url.Values{}
	for _, id := range chainIDs {
		q.Add("chain", strconv.Itoa(id))
	}
	u := fmt.Sprintf("%s/resolve/%s", c.baseURL, url.PathEscape(txHash))
	if len(chainIDs) > 0 {
		u += "?" + q.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-secret-key", c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("insight resolve failed: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
