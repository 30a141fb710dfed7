package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/internal/chat"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific collaborators.
type Runtime struct {
	*infrastructure.Infrastructure
	Tokens    *auth.Tokens
	Completer chat.Completer
}

// NewRuntime creates an API runtime with a module-scoped logger and the
// completion backend selected by cfg.LLM.Provider.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	completer, err := newCompleter(infra.Lifecycle.Context(), &cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("completer init failed: %w", err)
	}

	if closer, ok := completer.(interface{ Close() error }); ok {
		infra.Lifecycle.OnShutdown(func() {
			<-infra.Lifecycle.Context().Done()
			if err := closer.Close(); err != nil {
				logger.Error("completer close failed", "error", err)
			}
		})
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Blobs:     infra.Blobs,
			Extractor: infra.Extractor,
		},
		Tokens:    auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTLDuration(), cfg.Auth.Issuer),
		Completer: completer,
	}, nil
}

func newCompleter(ctx context.Context, cfg *config.LLMConfig, logger *slog.Logger) (chat.Completer, error) {
	switch cfg.Provider {
	case config.LLMProviderAgents:
		agentCfg, err := cfg.LoadAgentConfig()
		if err != nil {
			return nil, err
		}
		a, err := chat.NewAgent(agentCfg)
		if err != nil {
			return nil, err
		}
		logger.Info("using go-agents completer", "config", cfg.AgentConfig)
		return a, nil
	default:
		g, err := chat.NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		logger.Info("using gemini completer", "model", cfg.Model)
		return g, nil
	}
}
