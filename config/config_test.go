package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port: %d", cfg.Server.Port)
	}
	if cfg.Limits.DailyQuota != 2000 {
		t.Fatalf("default quota: %d", cfg.Limits.DailyQuota)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLUBAPI_SERVER_PORT", "9090")
	t.Setenv("CLUBAPI_REDIS_ADDR", "10.0.0.5:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("env port override ignored: %d", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "10.0.0.5:6379" {
		t.Fatalf("env redis override ignored: %s", cfg.Redis.Addr)
	}
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("server:\n  port: 7070\n  cors_origin: https://club.example\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 || cfg.Server.CORSOrigin != "https://club.example" {
		t.Fatalf("file values ignored: %+v", cfg.Server)
	}
}

func TestLoad_InvalidPortRejected(t *testing.T) {
	t.Setenv("CLUBAPI_SERVER_PORT", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("want error for invalid port")
	}
}
