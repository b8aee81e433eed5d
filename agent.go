// agent.go
package main

import (
	"context"
	"fmt"

	"github.com/aktagon/llmkit/anthropic/agents"
)

// AgentInvoker runs the analysis worker as an Anthropic chat agent with a
// structured output schema, so its responses decode through the same path as
// every other source. The API key is injected at construction and the agent
// is reused read-only across invocations.
type AgentInvoker struct {
	agent        *agents.ChatAgent
	systemPrompt string
	schema       string
	maxTokens    int
	temperature  float64
}

// NewAgentInvoker creates the analysis agent from loaded configuration.
func NewAgentInvoker(apiKey string, config *Config) (*AgentInvoker, error) {
	agent, err := agents.New(apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating analysis agent: %w", err)
	}

	return &AgentInvoker{
		agent:        agent,
		systemPrompt: config.GetAnalysisSystemPrompt(),
		schema:       config.GetAnalysisSchema(),
		maxTokens:    config.Settings.Analysis.MaxTokens,
		temperature:  config.Settings.Analysis.Temperature,
	}, nil
}

func (a *AgentInvoker) Invoke(ctx context.Context, input string) (string, error) {
	prompt := fmt.Sprintf("Aggregated source records:\n%s", input)

	response, err := a.agent.Chat(prompt, &agents.ChatOptions{
		SystemPrompt: a.systemPrompt,
		Schema:       a.schema,
		MaxTokens:    a.maxTokens,
		Temperature:  a.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("analysis agent chat: %w", err)
	}

	return response.Text, nil
}
