package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/infrastructure"
	"github.com/JaimeStill/pdf-chat/internal/ingestion"
	"github.com/google/uuid"
)

type stubAuth struct {
	auth.System
	tokens *auth.Tokens
}

func (s stubAuth) Verify(token string) (uuid.UUID, error) {
	return s.tokens.Verify(token)
}

type stubIngestion struct {
	ingestion.System
	items []ingestion.ListItem
}

func (s stubIngestion) List(context.Context, uuid.UUID) ([]ingestion.ListItem, error) {
	return s.items, nil
}

func newTestHandler(t *testing.T) (http.Handler, *auth.Tokens) {
	t.Helper()

	cfg := &config.Config{Version: "test"}
	cfg.API.BasePath = "/api"
	cfg.API.OpenAPI.Title = "PDF Chat"

	tokens := auth.NewTokens("test-secret", time.Hour, "pdf-chat")
	runtime := &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		Tokens: tokens,
	}
	domain := &Domain{
		Auth:      stubAuth{tokens: tokens},
		Ingestion: stubIngestion{items: []ingestion.ListItem{{Filename: "a.pdf", FileID: uuid.NewString()}}},
	}

	h, err := NewHandler(cfg, runtime, domain)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h, tokens
}

func TestNewHandler_OpenAPI(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var doc struct {
		Paths      map[string]json.RawMessage `json:"paths"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	for _, path := range []string{
		"/api/users/register",
		"/api/users/login",
		"/api/pdf/pdf-upload",
		"/api/pdf/pdf-list",
		"/api/pdf/pdf-parse",
		"/api/pdf/pdf-select",
		"/api/chat/pdf-chat",
		"/api/chat/chat-history",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}

	for _, schema := range []string{"Credentials", "Token", "UploadResponse", "ChatRequest"} {
		if _, ok := doc.Components.Schemas[schema]; !ok {
			t.Errorf("spec missing schema %s", schema)
		}
	}
}

func TestNewHandler_Authentication(t *testing.T) {
	h, tokens := newTestHandler(t)

	token, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing token", "/api/pdf/pdf-list", "", http.StatusUnauthorized},
		{"chat requires token", "/api/chat/chat-history", "", http.StatusUnauthorized},
		{"garbage token", "/api/pdf/pdf-list", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "/api/pdf/pdf-list", "Bearer " + token.AccessToken, http.StatusOK},
		{"trailing slash", "/api/pdf/pdf-list/", "Bearer " + token.AccessToken, http.StatusOK},
		{"unknown route", "/api/pdf/nope", "Bearer " + token.AccessToken, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}
