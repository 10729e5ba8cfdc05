package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/tools"
)

// ErrEmptyAnswer is returned when the model produced no usable output.
var ErrEmptyAnswer = errors.New("agent returned an empty answer")

// DefaultSyncTimeout bounds RunSync, which has no caller-supplied context.
const DefaultSyncTimeout = 2 * time.Minute

// Agent wraps a ReAct executor over the blockchain tools. Both entry
// points have identical semantics; RunSync exists for callers that have
// no context to thread through and simply want a bounded blocking call.
type Agent struct {
	exec *agents.Executor
}

// New initializes the agent with a model and its tool set.
func New(llm llms.Model, toolset []tools.Tool) (*Agent, error) {
	peh := agents.NewParserErrorHandler(nil)
	exec, err := agents.Initialize(
		llm,
		toolset,
		agents.ZeroShotReactDescription,
		agents.WithMaxIterations(8),
		agents.WithReturnIntermediateSteps(),
		agents.WithParserErrorHandler(peh),
	)
	if err != nil {
		return nil, err
	}
	return &Agent{exec: exec}, nil
}

// Run asks the agent to resolve the query and returns its free-text
// answer. When the executor errors after partial progress, the last tool
// observation or partial output is returned best-effort instead.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	out, err := a.exec.Call(ctx, map[string]any{"input": query})
	if err != nil {
		if steps, ok := out["intermediateSteps"].([]schema.AgentStep); ok && len(steps) > 0 {
			return steps[len(steps)-1].Observation, nil
		}
		if v, ok := out["output"].(string); ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
		return "", err
	}
	answer, _ := out["output"].(string)
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}

// RunSync is the blocking variant of Run with a built-in timeout.
func (a *Agent) RunSync(query string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultSyncTimeout)
	defer cancel()
	return a.Run(ctx, query)
}
