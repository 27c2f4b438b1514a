package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lockievisual/studio-portal/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "studio-portal"
backend:
  base_url: "https://api.example.com"
server:
  session_secret: "test-secret"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "https://api.example.com" {
		t.Errorf("expected backend base_url, got %s", cfg.Backend.BaseURL)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Backend.TimeoutSeconds != models.GatewayTimeout {
		t.Errorf("expected default timeout %d, got %d", models.GatewayTimeout, cfg.Backend.TimeoutSeconds)
	}

	if cfg.Notifications.TTLSeconds != models.NotificationTTL {
		t.Errorf("expected default notification ttl %d, got %d", models.NotificationTTL, cfg.Notifications.TTLSeconds)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_SESSION_SECRET", "from-env")

	yamlContent := `
backend:
  base_url: "https://api.example.com"
server:
  session_secret: "${TEST_SESSION_SECRET}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.SessionSecret != "from-env" {
		t.Errorf("expected expanded secret, got %s", cfg.Server.SessionSecret)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing backend base_url")
	}

	cfg.Backend.BaseURL = "https://api.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing session secret")
	}

	cfg.Server.SessionSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateServices(t *testing.T) {
	valid := []models.ServiceOffering{
		{ID: 1, Name: "Graphic Design"},
		{ID: 2, Name: "Web Design"},
	}
	if err := ValidateServices(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	dup := []models.ServiceOffering{
		{ID: 1, Name: "Graphic Design"},
		{ID: 1, Name: "Web Design"},
	}
	if err := ValidateServices(dup); err == nil {
		t.Error("expected duplicate ID error")
	}

	zero := []models.ServiceOffering{{ID: 0, Name: "Broken"}}
	if err := ValidateServices(zero); err == nil {
		t.Error("expected zero ID error")
	}
}

func TestLoadServices(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "services.yaml")

	content := `
services:
  - id: 1
    name: "Graphic Design"
    active: true
  - id: 2
    name: "Video Production"
    active: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write services file: %v", err)
	}

	services, err := LoadServices(path)
	if err != nil {
		t.Fatalf("failed to load services: %v", err)
	}

	if len(services) != 2 || services[0].Name != "Graphic Design" {
		t.Errorf("unexpected services: %+v", services)
	}
}
