package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"tx-mentions-bot/internal/config"
	"tx-mentions-bot/internal/thread"
	"tx-mentions-bot/internal/twitter"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCP server exposing the posting side of the bot as tools, so an
// external agent can reply under a tweet or publish a whole thread.
func main() {
	cfg := config.Load()
	if err := cfg.RequireTwitter(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tw := twitter.NewClient(cfg.TwitterBaseURL, twitter.Credentials{
		APIKey:            cfg.APIKey,
		APISecret:         cfg.APISecret,
		AccessToken:       cfg.AccessToken,
		AccessTokenSecret: cfg.AccessTokenSecret,
	})
	publisher := twitter.Publisher{Post: tw.CreateTweet}

	s := server.NewMCPServer(
		"x-poster",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	replyTool := mcp.Tool{
		Name:        "twitter.post_reply",
		Description: "Post a reply under a tweet using Twitter API v2",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"in_reply_to_tweet_id": map[string]any{"type": "string", "description": "The tweet ID to reply to"},
				"text":                 map[string]any{"type": "string", "description": "The text to post as reply"},
			},
			Required: []string{"in_reply_to_tweet_id", "text"},
		},
	}

	s.AddTool(replyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inReply, err := request.RequireString("in_reply_to_tweet_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := tw.CreateTweet(ctx, text, inReply)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(id), nil
	})

	threadTool := mcp.Tool{
		Name:        "twitter.post_thread",
		Description: "Parse a 'Tweet 1/2/3' draft into a three-tweet thread and post it as a reply chain",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"in_reply_to_tweet_id": map[string]any{"type": "string", "description": "The tweet ID the thread replies to (optional)"},
				"text":                 map[string]any{"type": "string", "description": "Raw draft containing Tweet 1:/Tweet 2:/Tweet 3: markers"},
			},
			Required: []string{"text"},
		},
	}

	s.AddTool(threadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		inReply := request.GetString("in_reply_to_tweet_id", "")
		rootID, err := publisher.PublishThread(ctx, thread.Parse(text), inReply)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(rootID), nil
	})

	port := getEnv("PORT", "8081")
	httpServer := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)
	log.Printf("x-poster MCP server listening on :%s/mcp", port)
	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}
