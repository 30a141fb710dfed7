package api

import (
	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/internal/chat"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/ingestion"
	"github.com/JaimeStill/pdf-chat/pkg/openapi"
	"github.com/JaimeStill/pdf-chat/pkg/routes"
	"github.com/go-chi/chi/v5"
)

func registerRoutes(
	r chi.Router,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	authenticate := auth.Authenticate(domain.Auth, runtime.Logger)

	authHandler := auth.NewHandler(domain.Auth, runtime.Logger)
	pdfHandler := ingestion.NewHandler(domain.Ingestion, runtime.Logger, cfg.Storage.MaxUploadSizeBytes(), authenticate)
	chatHandler := chat.NewHandler(domain.Chat, runtime.Logger, authenticate)

	spec.Components.AddSchemas(auth.Spec.Schemas())
	spec.Components.AddSchemas(ingestion.Spec.Schemas())
	spec.Components.AddSchemas(chat.Spec.Schemas())

	routes.Register(
		r,
		cfg.API.BasePath,
		spec,
		authHandler.Routes(),
		pdfHandler.Routes(),
		chatHandler.Routes(),
	)
}
