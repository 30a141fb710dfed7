// Package api assembles the HTTP API: domain systems, route groups, middleware,
// and the generated OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/pkg/middleware"
	"github.com/JaimeStill/pdf-chat/pkg/openapi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewHandler builds the API router. The returned handler serves every route under
// cfg.API.BasePath, including the OpenAPI document at <base>/openapi.json.
func NewHandler(cfg *config.Config, runtime *Runtime, domain *Domain) (http.Handler, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	api := chi.NewRouter()
	registerRoutes(api, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	api.Get("/openapi.json", openapi.ServeSpec(specBytes))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.CORS(&cfg.API.CORS))
	r.Use(middleware.Logger(runtime.Logger))
	r.Mount(cfg.API.BasePath, api)

	return r, nil
}
