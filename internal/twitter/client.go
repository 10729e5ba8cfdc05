package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tx-mentions-bot/internal/types"

	"github.com/dghubble/oauth1"
	"github.com/hashicorp/go-retryablehttp"
)

// Credentials holds the OAuth 1.0a user-context keys required to post
// tweets and read mentions on behalf of the bot account.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Client talks to the Twitter API v2 with OAuth 1.0a signing and
// automatic retries on transient failures.
type Client struct {
	baseURL string
	http    *retryablehttp.Client

	// cached id of the authenticated user, filled on first use
	userID string
}

// NewClient builds a client against baseURL (normally
// https://api.twitter.com/2) signing every request with creds.
func NewClient(baseURL string, creds Credentials) *Client {
	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient = config.Client(oauth1.NoContext, token)

	return &Client{baseURL: baseURL, http: client}
}

// Me returns the id of the authenticated user.
func (c *Client) Me(ctx context.Context) (string, error) {
	var out struct {
		Data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := c.get(ctx, c.baseURL+"/users/me", &out); err != nil {
		return "", fmt.Errorf("get me: %w", err)
	}
	return out.Data.ID, nil
}

// RecentMentions fetches the newest mentions of the bot account, newest
// first. The API requires max_results >= 5, so that is the batch size.
func (c *Client) RecentMentions(ctx context.Context) ([]types.Mention, error) {
	if c.userID == "" {
		id, err := c.Me(ctx)
		if err != nil {
			return nil, err
		}
		c.userID = id
	}

	q := url.Values{}
	q.Set("max_results", "5")
	q.Set("tweet.fields", "created_at,text,author_id")
	u := fmt.Sprintf("%s/users/%s/mentions?%s", c.baseURL, c.userID, q.Encode())

	var out struct {
		Data []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			AuthorID  string `json:"author_id"`
			CreatedAt string `json:"created_at"`
		} `json:"data"`
	}
	if err := c.get(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("get mentions: %w", err)
	}

	mentions := make([]types.Mention, 0, len(out.Data))
	for _, d := range out.Data {
		mentions = append(mentions, types.Mention{
			ID:        d.ID,
			Text:      d.Text,
			AuthorID:  d.AuthorID,
			CreatedAt: d.CreatedAt,
		})
	}
	return mentions, nil
}

// CreateTweet posts text, optionally as a reply to inReplyTo, and
// returns the new tweet's id.
func (c *Client) CreateTweet(ctx context.Context, text string, inReplyTo string) (string, error) {
	body := map[string]any{"text": text}
	if inReplyTo != "" {
		body["reply"] = map[string]any{"in_reply_to_tweet_id": inReplyTo}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("twitter post failed: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode post response: %w", err)
	}
	return out.Data.ID, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("twitter get failed: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
