package main

import (
	"time"

	"github.com/JaimeStill/pdf-chat/internal/api"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/infrastructure"
	"github.com/JaimeStill/pdf-chat/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	runtime, err := api.NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}

	apiHandler, err := api.NewHandler(cfg, runtime, api.NewDomain(runtime, cfg))
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	router.Mount("/", apiHandler)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"llm_provider", cfg.LLM.Provider,
		"storage_backend", cfg.Storage.Backend,
	)

	return &Server{
		infra: infra,
		http:  server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once they are registered.
// Readiness flips after every startup hook has completed.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
