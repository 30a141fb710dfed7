package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/pkg/handlers"
	"github.com/JaimeStill/pdf-chat/pkg/routes"
)

// Handler provides the chat endpoints.
type Handler struct {
	sys        System
	logger     *slog.Logger
	middleware []func(http.Handler) http.Handler
}

func NewHandler(sys System, logger *slog.Logger, middleware ...func(http.Handler) http.Handler) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "chat"),
		middleware: middleware,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/chat",
		Tags:        []string{"Chat"},
		Description: "Chat with the selected PDF",
		Middleware:  h.middleware,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/pdf-chat", Handler: h.Chat, OpenAPI: Spec.Chat},
			{Method: "GET", Pattern: "/chat-history", Handler: h.History, OpenAPI: Spec.History},
		},
	}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "invalid request body")
		return
	}

	reply, err := h.sys.Send(r.Context(), userID, req.Message)
	if err != nil {
		handlers.RespondErrorMessage(w, h.logger, MapHTTPStatus(err), err, PublicMessage(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n < 1 {
			err = fmt.Errorf("limit %d out of range", n)
		}
		if err != nil {
			handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "limit must be a positive integer")
			return
		}
		limit = n
	}

	msgs, err := h.sys.History(r.Context(), userID, limit)
	if err != nil {
		handlers.RespondErrorMessage(w, h.logger, MapHTTPStatus(err), err, PublicMessage(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, msgs)
}
