package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Agent completes prompts through a go-agents provider, which lets the
// service target OpenAI-compatible endpoints, Ollama, or Azure deployments.
type Agent struct {
	agent agent.Agent
}

// NewAgent builds an agent from a JSON agent configuration merged over the library defaults.
func NewAgent(config json.RawMessage) (*Agent, error) {
	cfg := agtconfig.DefaultAgentConfig()

	if len(config) > 0 {
		var userCfg agtconfig.AgentConfig
		if err := json.Unmarshal(config, &userCfg); err != nil {
			return nil, fmt.Errorf("parse agent config: %w", err)
		}
		cfg.Merge(&userCfg)
	}

	a, err := agent.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	return &Agent{agent: a}, nil
}

// Complete flattens the prompt into a single transcript since the agent
// chat call accepts one prompt string.
func (a *Agent) Complete(ctx context.Context, p Prompt) (string, error) {
	resp, err := a.agent.Chat(ctx, transcript(p))
	if err != nil {
		return "", fmt.Errorf("agent chat: %w", err)
	}
	return resp.Content(), nil
}

func transcript(p Prompt) string {
	var b strings.Builder

	if p.System != "" {
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}

	if len(p.History) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range p.History {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %s", RoleUser, p.Message)
	return b.String()
}
