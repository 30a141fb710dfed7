package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/pdf-chat/pkg/handlers"
	"github.com/JaimeStill/pdf-chat/pkg/routes"
)

// Handler provides the registration and login endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the user endpoint route group. These routes are public.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/users",
		Tags:        []string{"Users"},
		Description: "Registration and login",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
		},
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decode(w, r)
	if !ok {
		return
	}

	u, err := h.sys.Register(r.Context(), creds)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decode(w, r)
	if !ok {
		return
	}

	token, err := h.sys.Login(r.Context(), creds)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, token)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Credentials, bool) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "invalid request body")
		return creds, false
	}

	if err := creds.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return creds, false
	}

	return creds, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		handlers.RespondErrorMessage(w, h.logger, status, err, "internal server error")
		return
	}
	handlers.RespondError(w, h.logger, status, err)
}
