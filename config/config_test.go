package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configContent := `
server:
  port: 9090
log:
  level: "debug"
  format: "json"
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
store:
  max_records: 50
minio:
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "test-bucket"
  use_ssl: false
  expire_days: 14
document:
  min_pdf_bytes: 2000
  max_image_bytes: 1048576
rating:
  secret: "rating-secret"
  token_expire_hours: 72
users:
  - username: "testuser"
    password: "testpass"
    tenant: "printers-uae"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	// Test loading config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token_expire_hours 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Store.MaxRecords != 50 {
		t.Errorf("Expected max_records 50, got %d", cfg.Store.MaxRecords)
	}
	if cfg.Minio.ExpireDays != 14 {
		t.Errorf("Expected expire_days 14, got %d", cfg.Minio.ExpireDays)
	}
	if cfg.Document.MinPDFBytes != 2000 {
		t.Errorf("Expected min_pdf_bytes 2000, got %d", cfg.Document.MinPDFBytes)
	}
	if cfg.Document.MaxImageBytes != 1048576 {
		t.Errorf("Expected max_image_bytes 1048576, got %d", cfg.Document.MaxImageBytes)
	}
	if cfg.Rating.TokenExpireHours != 72 {
		t.Errorf("Expected rating token_expire_hours 72, got %d", cfg.Rating.TokenExpireHours)
	}
	if len(cfg.Users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(cfg.Users))
	}
	if cfg.Users[0].Tenant != "printers-uae" {
		t.Errorf("Expected tenant printers-uae, got %s", cfg.Users[0].Tenant)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Create minimal config to test defaults
	configContent := `
auth:
  jwt_secret: "only-secret"
`
	tmpFile, err := os.CreateTemp("", "config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token_expire_hours 24, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Document.MinPDFBytes != 1000 {
		t.Errorf("Expected default min_pdf_bytes 1000, got %d", cfg.Document.MinPDFBytes)
	}
	if cfg.Document.MaxImageBytes != 5*1024*1024 {
		t.Errorf("Expected default max_image_bytes 5MiB, got %d", cfg.Document.MaxImageBytes)
	}
	if cfg.Rating.TokenExpireHours != 168 {
		t.Errorf("Expected default rating expiry 168h, got %d", cfg.Rating.TokenExpireHours)
	}
	if cfg.Rating.Secret != "only-secret" {
		t.Errorf("Expected rating secret to fall back to JWT secret, got %s", cfg.Rating.Secret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/non/existent/config.yaml")
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "alice", Password: "pw1", Tenant: "printers-uae"},
			{Username: "bob", Password: "pw2", Tenant: "g3-facility"},
		},
	}

	user := cfg.FindUser("bob")
	if user == nil {
		t.Fatal("Expected to find user bob")
	}
	if user.Tenant != "g3-facility" {
		t.Errorf("Expected tenant g3-facility, got %s", user.Tenant)
	}

	if cfg.FindUser("nobody") != nil {
		t.Error("Expected nil for unknown user")
	}
}
