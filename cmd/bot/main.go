package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tx-mentions-bot/internal/agent"
	"tx-mentions-bot/internal/config"
	"tx-mentions-bot/internal/handlers"
	"tx-mentions-bot/internal/httpserver"
	"tx-mentions-bot/internal/insight"
	mcpclient "tx-mentions-bot/internal/mcp"
	"tx-mentions-bot/internal/mentions"
	"tx-mentions-bot/internal/thread"
	"tx-mentions-bot/internal/twitter"

	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/tools"
)

func main() {
	cfg := config.Load()
	if err := cfg.RequireTwitter(); err != nil {
		log.Fatal(err)
	}

	tw := twitter.NewClient(cfg.TwitterBaseURL, twitter.Credentials{
		APIKey:            cfg.APIKey,
		APISecret:         cfg.APISecret,
		AccessToken:       cfg.AccessToken,
		AccessTokenSecret: cfg.AccessTokenSecret,
	})
	publisher := twitter.Publisher{Post: tw.CreateTweet}

	run, compose, err := buildAgent(cfg)
	if err != nil {
		log.Fatalf("agent setup failed: %v", err)
	}

	handler := handlers.MentionsHandler{
		Secret:  cfg.WebhookSecret,
		Run:     run,
		Compose: compose,
		Publish: publisher.PublishThread,
	}

	loop := &mentions.Loop{
		Fetch:    tw.RecentMentions,
		Handle:   handler.Process,
		Tracker:  mentions.NewTracker(),
		Interval: cfg.PollInterval,
		Backoff:  cfg.PollBackoff,
	}

	srv := httpserver.NewServer(cfg.Port, handler, loop.Stats)
	go func() {
		log.Printf("tx-mentions-bot listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting mention poll loop (interval %s, backoff %s)", cfg.PollInterval, cfg.PollBackoff)
	loop.Run(ctx)

	log.Printf("shutting down")
	_ = srv.Shutdown(context.Background())
}

// buildAgent wires the answer pipeline from config: a LangChain ReAct
// agent over the blockchain tools when an OpenAI key is present,
// otherwise the direct stdio MCP asker. The composer needs a model, so
// without a key the agent's answer is parsed as-is.
func buildAgent(cfg config.Config) (run func(context.Context, string) (string, error), compose handlers.ComposeFunc, err error) {
	if cfg.OpenAIAPIKey == "" {
		if cfg.MCPCmd == "" {
			log.Fatal("OPENAI_API_KEY or MCP_CMD is required to answer mentions")
		}
		log.Printf("no OpenAI key configured, using stdio MCP asker via %s", cfg.MCPCmd)
		ask := agent.NewAsker(cfg.MCPCmd, cfg.MCPTool)
		return ask, nil, nil
	}

	llm, err := openai.New(openai.WithModel(cfg.OpenAIModel))
	if err != nil {
		return nil, nil, err
	}

	var toolset []tools.Tool
	if cfg.MCPHTTP != "" {
		discovered, err := agent.DiscoverTools(mcpclient.NewHTTPClient(cfg.MCPHTTP))
		if err != nil {
			return nil, nil, err
		}
		toolset = discovered
	}
	if cfg.ThirdwebSecretKey != "" {
		toolset = append(toolset, agent.NewAnalyzeTool(insight.NewClient(cfg.InsightBaseURL, cfg.ThirdwebSecretKey)))
	}
	if len(toolset) == 0 {
		log.Fatal("no blockchain tools configured: set MCP_HTTP and/or THIRDWEB_SECRET_KEY")
	}

	ag, err := agent.New(llm, toolset)
	if err != nil {
		return nil, nil, err
	}
	composer := thread.Composer{LLM: llm}
	return ag.Run, composer.Compose, nil
}
