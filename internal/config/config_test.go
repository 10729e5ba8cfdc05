package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.twitter.com/2", cfg.TwitterBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 15*time.Minute, cfg.PollInterval)
	assert.Equal(t, 60*time.Second, cfg.PollBackoff)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TWITTER_API_KEY", "k")
	t.Setenv("TWITTER_API_SECRET", "s")
	t.Setenv("ACCESS_TOKEN", "at")
	t.Setenv("ACCESS_TOKEN_SECRET", "ats")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("POLL_INTERVAL", "1m")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAIModel)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	require.NoError(t, cfg.RequireTwitter())
}

func TestRequireTwitter(t *testing.T) {
	var cfg Config
	require.Error(t, cfg.RequireTwitter())

	cfg.APIKey, cfg.APISecret = "k", "s"
	err := cfg.RequireTwitter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN")

	cfg.AccessToken, cfg.AccessTokenSecret = "at", "ats"
	assert.NoError(t, cfg.RequireTwitter())
}
