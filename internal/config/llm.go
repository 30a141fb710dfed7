package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvLLMProvider        = "LLM_PROVIDER"
	EnvLLMAPIKey          = "GEMINI_API_KEY"
	EnvLLMModel           = "LLM_MODEL"
	EnvLLMAgentConfig     = "LLM_AGENT_CONFIG"
	EnvLLMHistoryLimit    = "LLM_HISTORY_LIMIT"
	EnvLLMMaxContextChars = "LLM_MAX_CONTEXT_CHARS"
	EnvLLMTimeout         = "LLM_TIMEOUT"
)

// LLMProvider selects the chat completion backend.
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderAgents LLMProvider = "agents"
)

// LLMConfig contains chat completion configuration.
// AgentConfig is a path to a go-agents JSON configuration, used by the agents provider.
type LLMConfig struct {
	Provider        LLMProvider `toml:"provider"`
	APIKey          string      `toml:"api_key"`
	Model           string      `toml:"model"`
	AgentConfig     string      `toml:"agent_config"`
	HistoryLimit    int         `toml:"history_limit"`
	MaxContextChars int         `toml:"max_context_chars"`
	Timeout         string      `toml:"timeout"`
}

func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// LoadAgentConfig reads the go-agents configuration file. It returns nil when none is set.
func (c *LLMConfig) LoadAgentConfig() (json.RawMessage, error) {
	if c.AgentConfig == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.AgentConfig)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("agent config %s is not valid JSON", c.AgentConfig)
	}
	return data, nil
}

func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.AgentConfig != "" {
		c.AgentConfig = overlay.AgentConfig
	}
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
	if overlay.MaxContextChars != 0 {
		c.MaxContextChars = overlay.MaxContextChars
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = LLMProviderGemini
	}
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 20
	}
	if c.MaxContextChars == 0 {
		c.MaxContextChars = 200000
	}
	if c.Timeout == "" {
		c.Timeout = "90s"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMProvider); v != "" {
		c.Provider = LLMProvider(v)
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvLLMAgentConfig); v != "" {
		c.AgentConfig = v
	}
	if v := os.Getenv(EnvLLMHistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLimit = n
		}
	}
	if v := os.Getenv(EnvLLMMaxContextChars); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxContextChars = n
		}
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *LLMConfig) validate() error {
	switch c.Provider {
	case LLMProviderGemini, LLMProviderAgents:
	default:
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
