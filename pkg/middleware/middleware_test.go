package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/pdf-chat/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			"disabled",
			middleware.CORSConfig{Enabled: false, Origins: []string{"http://localhost:3000"}},
			"http://localhost:3000",
			"",
		},
		{
			"no origins",
			middleware.CORSConfig{Enabled: true},
			"http://localhost:3000",
			"",
		},
		{
			"allowed origin",
			middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}, AllowedMethods: []string{"GET", "POST"}},
			"http://localhost:3000",
			"http://localhost:3000",
		},
		{
			"disallowed origin",
			middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}, AllowedMethods: []string{"GET"}},
			"http://evil.example",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := middleware.CORS(&tt.cfg)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORSConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_CORS_ENABLED", "true")
	os.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080")
	os.Setenv("TEST_CORS_MAX_AGE", "7200")
	defer func() {
		os.Unsetenv("TEST_CORS_ENABLED")
		os.Unsetenv("TEST_CORS_ORIGINS")
		os.Unsetenv("TEST_CORS_MAX_AGE")
	}()

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
		MaxAge:  "TEST_CORS_MAX_AGE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true from env")
	}
	if len(cfg.Origins) != 2 {
		t.Errorf("Origins length = %d, want 2", len(cfg.Origins))
	}
	if len(cfg.AllowedMethods) == 0 {
		t.Error("AllowedMethods should have defaults")
	}
	if cfg.MaxAge != 7200 {
		t.Errorf("MaxAge = %d, want 7200", cfg.MaxAge)
	}
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if buf.Len() > 0 {
			t.Error("log was written before handler completed")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	wrapped := middleware.Logger(logger)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/pdf-list", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	out := buf.String()
	for _, want := range []string{"msg=request", "method=GET", "/api/pdf/pdf-list", "status=418", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
