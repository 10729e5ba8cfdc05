package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"tx-mentions-bot/internal/insight"
	"tx-mentions-bot/internal/mentions"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the entry points need. Values come from a
// .env file, an optional config.yaml, and the environment, in that
// order; environment variables win.
type Config struct {
	Port          string
	WebhookSecret string

	TwitterBaseURL    string
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string

	ThirdwebSecretKey string
	InsightBaseURL    string

	OpenAIAPIKey string
	OpenAIModel  string

	// MCPHTTP is the HTTP MCP endpoint serving blockchain tools
	// (normally cmd/mcpproxy). MCPCmd/MCPTool configure the stdio
	// fallback asker used when no OpenAI key is set.
	MCPHTTP string
	MCPCmd  string
	MCPTool string

	PollInterval time.Duration
	PollBackoff  time.Duration
}

// Load reads the .env file (if present), an optional config.yaml, and
// the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on the environment")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("port", "8080")
	viper.SetDefault("twitter.base", "https://api.twitter.com/2")
	viper.SetDefault("insight.base", insight.DefaultBaseURL)
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("mcp.tool", "blockchain.answer")
	viper.SetDefault("poll.interval", mentions.DefaultInterval)
	viper.SetDefault("poll.backoff", mentions.DefaultBackoff)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("no config.yaml found, using defaults and environment")
		} else {
			panic(fmt.Errorf("parse config.yaml: %w", err))
		}
	}

	return Config{
		Port:          viper.GetString("port"),
		WebhookSecret: viper.GetString("webhook_secret"),

		TwitterBaseURL:    viper.GetString("twitter.base"),
		APIKey:            viper.GetString("twitter_api_key"),
		APISecret:         viper.GetString("twitter_api_secret"),
		AccessToken:       viper.GetString("access_token"),
		AccessTokenSecret: viper.GetString("access_token_secret"),
		BearerToken:       viper.GetString("bearer_token"),

		ThirdwebSecretKey: viper.GetString("thirdweb_secret_key"),
		InsightBaseURL:    viper.GetString("insight.base"),

		OpenAIAPIKey: viper.GetString("openai_api_key"),
		OpenAIModel:  viper.GetString("openai.model"),

		MCPHTTP: viper.GetString("mcp.http"),
		MCPCmd:  viper.GetString("mcp.cmd"),
		MCPTool: viper.GetString("mcp.tool"),

		PollInterval: viper.GetDuration("poll.interval"),
		PollBackoff:  viper.GetDuration("poll.backoff"),
	}
}

// RequireTwitter fails fast when the posting credentials are missing.
func (c Config) RequireTwitter() error {
	switch {
	case c.APIKey == "" || c.APISecret == "":
		return fmt.Errorf("TWITTER_API_KEY and TWITTER_API_SECRET are required")
	case c.AccessToken == "" || c.AccessTokenSecret == "":
		return fmt.Errorf("ACCESS_TOKEN and ACCESS_TOKEN_SECRET are required")
	}
	return nil
}
