package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServerConfig_Finalize_Defaults(t *testing.T) {
	var c ServerConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := c.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:8000")
	}
	if got := c.WriteTimeoutDuration(); got != 2*time.Minute {
		t.Errorf("WriteTimeoutDuration() = %v, want %v", got, 2*time.Minute)
	}
}

func TestServerConfig_Finalize_Env(t *testing.T) {
	t.Setenv(EnvServerPort, "9090")
	t.Setenv(EnvServerReadTimeout, "5s")

	var c ServerConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if c.Port != 9090 {
		t.Errorf("Port = %d, want 9090", c.Port)
	}
	if got := c.ReadTimeoutDuration(); got != 5*time.Second {
		t.Errorf("ReadTimeoutDuration() = %v, want %v", got, 5*time.Second)
	}
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr bool
	}{
		{"valid", ServerConfig{Port: 80, ReadTimeout: "1s", WriteTimeout: "1s", ShutdownTimeout: "1s"}, false},
		{"port too high", ServerConfig{Port: 70000, ReadTimeout: "1s", WriteTimeout: "1s", ShutdownTimeout: "1s"}, true},
		{"bad timeout", ServerConfig{Port: 80, ReadTimeout: "soon", WriteTimeout: "1s", ShutdownTimeout: "1s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		env     map[string]string
		wantErr bool
		wantTTL time.Duration
	}{
		{name: "secret required", wantErr: true},
		{name: "secret from env", env: map[string]string{EnvAuthSecret: "s3cret"}, wantTTL: 180 * time.Minute},
		{name: "ttl override", cfg: AuthConfig{Secret: "x", TokenTTL: "15m"}, wantTTL: 15 * time.Minute},
		{name: "negative ttl", cfg: AuthConfig{Secret: "x", TokenTTL: "-1m"}, wantErr: true},
		{name: "bad ttl", cfg: AuthConfig{Secret: "x", TokenTTL: "later"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAuthSecret, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := tt.cfg
			err := cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := cfg.TokenTTLDuration(); got != tt.wantTTL {
				t.Errorf("TokenTTLDuration() = %v, want %v", got, tt.wantTTL)
			}
			if cfg.Issuer != "pdf-chat" {
				t.Errorf("Issuer = %q, want %q", cfg.Issuer, "pdf-chat")
			}
		})
	}
}

func TestLLMConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var c LLMConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.Provider != LLMProviderGemini {
			t.Errorf("Provider = %q, want %q", c.Provider, LLMProviderGemini)
		}
		if c.HistoryLimit != 20 {
			t.Errorf("HistoryLimit = %d, want 20", c.HistoryLimit)
		}
		if got := c.TimeoutDuration(); got != 90*time.Second {
			t.Errorf("TimeoutDuration() = %v, want %v", got, 90*time.Second)
		}
	})

	t.Run("api key from env", func(t *testing.T) {
		t.Setenv(EnvLLMAPIKey, "key")
		var c LLMConfig
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.APIKey != "key" {
			t.Errorf("APIKey = %q, want %q", c.APIKey, "key")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		c := LLMConfig{Provider: "openai"}
		if err := c.Finalize(); err == nil {
			t.Error("Finalize() error = nil, want error")
		}
	})
}

func TestLLMConfig_LoadAgentConfig(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "agent.json")
	invalid := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(valid, []byte(`{"name":"pdf-chat"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte(`{`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantNil bool
		wantErr bool
	}{
		{name: "unset", wantNil: true},
		{name: "valid", path: valid},
		{name: "invalid json", path: invalid, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := LLMConfig{AgentConfig: tt.path}
			got, err := c.LoadAgentConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadAgentConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != (tt.wantNil || tt.wantErr) {
				t.Errorf("LoadAgentConfig() = %s", got)
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := Config{
		ShutdownTimeout: "30s",
		Server:          ServerConfig{Port: 8000, Host: "0.0.0.0"},
		LLM:             LLMConfig{Model: "gemini-2.0-flash"},
	}
	overlay := Config{
		Server: ServerConfig{Port: 9000},
		LLM:    LLMConfig{Provider: LLMProviderAgents},
	}

	base.Merge(&overlay)

	if base.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", base.Server.Port)
	}
	if base.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want unchanged", base.Server.Host)
	}
	if base.LLM.Provider != LLMProviderAgents || base.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("LLM = %+v, want provider overlaid and model kept", base.LLM)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, want unchanged", base.ShutdownTimeout)
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	base := `
shutdown_timeout = "20s"

[server]
port = 8000

[database]
name = "pdf_chat"
user = "pdf_chat"

[auth]
secret = "base-secret"

[storage]
backend = "filesystem"
base_path = "` + filepath.ToSlash(filepath.Join(dir, "blobs")) + `"
`
	overlay := `
[server]
port = 8100
`
	if err := os.WriteFile(BaseConfigFile, []byte(base), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("config.test.toml", []byte(overlay), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvServiceEnv, "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8100 {
		t.Errorf("Server.Port = %d, want 8100", cfg.Server.Port)
	}
	if got := cfg.ShutdownTimeoutDuration(); got != 20*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want %v", got, 20*time.Second)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/api")
	}
}
