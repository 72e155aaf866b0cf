package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "SERVER_PORT", "ENV", "ALLOWED_ORIGINS", "SEND_BUFFER", "STORE_TIMEOUT", "TYPING_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected ServerPort 8080, got %s", cfg.ServerPort)
	}
	if cfg.DBPort != "3306" {
		t.Errorf("Expected DBPort 3306, got %s", cfg.DBPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Expected Env development, got %s", cfg.Env)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected default origins: %v", cfg.AllowedOrigins)
	}
	if cfg.TypingTimeout != 2*time.Second {
		t.Errorf("Expected TypingTimeout 2s, got %s", cfg.TypingTimeout)
	}
	if cfg.UseDatabase() {
		t.Error("UseDatabase() should be false without DB_NAME")
	}
}

func TestLoad_TrimsOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " http://a.example , http://b.example ,")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"http://a.example", "http://b.example"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("Expected %v, got %v", want, cfg.AllowedOrigins)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("origin[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	os.Unsetenv("DB_NAME")
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("SERVER_PORT")
	t.Cleanup(func() {
		os.Unsetenv("DB_NAME")
		os.Unsetenv("SERVER_PORT")
	})

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SERVER_PORT=9090\nDB_NAME=chathub\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("Expected ServerPort 9090 from .env, got %s", cfg.ServerPort)
	}
	if !cfg.UseDatabase() {
		t.Error("UseDatabase() should be true when DB_NAME is set")
	}
}

func TestLoad_InvalidSendBuffer(t *testing.T) {
	t.Setenv("SEND_BUFFER", "0")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for SEND_BUFFER=0")
	}
}
