package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"tx-mentions-bot/internal/agent"
	"tx-mentions-bot/internal/config"
	"tx-mentions-bot/internal/insight"
	mcpclient "tx-mentions-bot/internal/mcp"
	"tx-mentions-bot/internal/thread"
	"tx-mentions-bot/internal/twitter"
	"tx-mentions-bot/internal/types"

	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/tools"
)

// Interactive direct-query entry point: ask the blockchain agent a
// question and post the answer as a thread, without waiting for a
// mention. A dry run still composes and prints the thread; it only skips
// posting.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Println("\nOperation cancelled by user")
		os.Exit(0)
	}()

	cfg := config.Load()
	in := bufio.NewReader(os.Stdin)

	fmt.Println("\n=== Blockchain Twitter Bot - Direct Query ===")
	fmt.Println("\nEnter your blockchain question:")
	query := prompt(in, "> ")

	fmt.Printf("\nYou asked: %q\n", query)
	if !yes(prompt(in, "Is this correct? (y/n): ")) {
		fmt.Println("Let's try again with your complete question.")
		fmt.Println("Enter your complete blockchain question:")
		query = prompt(in, "> ")
		fmt.Printf("\nYou asked: %q\n", query)
	}

	replyTo := ""
	if yes(prompt(in, "\nDo you want to reply to an existing tweet? (y/n): ")) {
		replyTo = prompt(in, "Enter the tweet ID to reply to: ")
	}

	dryRun := !yes(prompt(in, "\nDo you want to post this to Twitter? (y/n): "))

	fmt.Println("\nSending your question to the blockchain agent...")
	answer, composer, err := runAgent(ctx, cfg, query)
	if err != nil {
		fmt.Printf("\nError querying agent: %v\n", err)
		fmt.Println("Please check your question and try again.")
		os.Exit(1)
	}
	if strings.TrimSpace(answer) == "" {
		fmt.Println("\nWarning: agent returned an empty response. Please try a different query.")
		os.Exit(1)
	}

	fmt.Println("\nGenerating Twitter thread...")
	t, err := composeThread(ctx, composer, answer)
	if err != nil {
		fmt.Printf("\nError generating thread: %v\n", err)
		fmt.Println("Agent response received but could not generate a thread. Raw agent response:")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Println(answer)
		fmt.Println(strings.Repeat("-", 50))
		os.Exit(1)
	}

	fmt.Println("\nGenerated Twitter Thread:")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println(t.Tweet1)
	fmt.Println("\n" + t.Tweet2)
	fmt.Println("\n" + t.Tweet3)
	fmt.Println(strings.Repeat("-", 50))

	if dryRun {
		fmt.Println("\nDry run - thread not posted to Twitter")
		return
	}

	if err := cfg.RequireTwitter(); err != nil {
		fmt.Printf("\nError posting to Twitter: %v\n", err)
		os.Exit(1)
	}
	tw := twitter.NewClient(cfg.TwitterBaseURL, twitter.Credentials{
		APIKey:            cfg.APIKey,
		APISecret:         cfg.APISecret,
		AccessToken:       cfg.AccessToken,
		AccessTokenSecret: cfg.AccessTokenSecret,
	})
	publisher := twitter.Publisher{Post: tw.CreateTweet}

	rootID, err := publisher.PublishThread(ctx, t, replyTo)
	if err != nil {
		fmt.Printf("\nError posting to Twitter: %v\n", err)
		fmt.Println("Thread was generated but could not be posted.")
		os.Exit(1)
	}
	fmt.Printf("\nThread posted successfully! First tweet ID: %s\n", rootID)
}

// runAgent answers the query with whichever agent the config supports
// and returns a composer when a model is available for drafting.
func runAgent(ctx context.Context, cfg config.Config, query string) (string, *thread.Composer, error) {
	if cfg.OpenAIAPIKey == "" {
		if cfg.MCPCmd == "" {
			return "", nil, fmt.Errorf("OPENAI_API_KEY or MCP_CMD must be configured")
		}
		ask := agent.NewAsker(cfg.MCPCmd, cfg.MCPTool)
		answer, err := ask(ctx, query)
		return answer, nil, err
	}

	llm, err := openai.New(openai.WithModel(cfg.OpenAIModel))
	if err != nil {
		return "", nil, err
	}

	var toolset []tools.Tool
	if cfg.MCPHTTP != "" {
		discovered, err := agent.DiscoverTools(mcpclient.NewHTTPClient(cfg.MCPHTTP))
		if err != nil {
			return "", nil, err
		}
		toolset = discovered
	}
	if cfg.ThirdwebSecretKey != "" {
		toolset = append(toolset, agent.NewAnalyzeTool(insight.NewClient(cfg.InsightBaseURL, cfg.ThirdwebSecretKey)))
	}
	if len(toolset) == 0 {
		return "", nil, fmt.Errorf("no blockchain tools configured: set MCP_HTTP and/or THIRDWEB_SECRET_KEY")
	}

	ag, err := agent.New(llm, toolset)
	if err != nil {
		return "", nil, err
	}
	answer, err := ag.Run(ctx, query)
	return answer, &thread.Composer{LLM: llm}, err
}

// composeThread drafts the thread with the model when one is available;
// without a model the answer is parsed directly, which never fails.
func composeThread(ctx context.Context, composer *thread.Composer, answer string) (types.Thread, error) {
	if composer == nil {
		return thread.Parse(answer), nil
	}
	return composer.Compose(ctx, answer)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("read input: %v", err)
	}
	return strings.TrimSpace(line)
}

func yes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(answer), "y")
}
