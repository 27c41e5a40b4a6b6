package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	os.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/listar")
	os.Setenv("JWT_SECRET", "test-secret")
	t.Cleanup(func() {
		os.Unsetenv("MYSQL_DSN")
		os.Unsetenv("JWT_SECRET")
	})
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MySQL.DSN == "" {
		t.Error("MySQL DSN should not be empty")
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}

	if cfg.PerPage != 10 {
		t.Errorf("Expected PerPage 10, got %d", cfg.PerPage)
	}

	if !cfg.ViewSync.Enabled || cfg.ViewSync.IntervalSec != 30 {
		t.Errorf("Expected view sync enabled every 30s, got %+v", cfg.ViewSync)
	}
}

func TestLoad_MissingMySQLDSN(t *testing.T) {
	os.Unsetenv("MYSQL_DSN")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when MYSQL_DSN is missing")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	os.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/listar")
	os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("MYSQL_DSN")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when JWT_SECRET is missing")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequired(t)
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "5")
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("PER_PAGE", "25")
	defer func() {
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("PER_PAGE")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Redis.Addr != "redis.example.com:6379" {
		t.Errorf("Expected custom Redis addr, got %s", cfg.Redis.Addr)
	}

	if cfg.Redis.DB != 5 {
		t.Errorf("Expected Redis DB 5, got %d", cfg.Redis.DB)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTPAddr :9090, got %s", cfg.HTTPAddr)
	}

	if cfg.PerPage != 25 {
		t.Errorf("Expected PerPage 25, got %d", cfg.PerPage)
	}
}

func TestLoadFromINI(t *testing.T) {
	os.Unsetenv("MYSQL_DSN")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("HTTP_ADDR")

	path := filepath.Join(t.TempDir(), "listar.ini")
	content := `[mysql]
dsn = ini:dsn@tcp(localhost:3306)/listar

[jwt]
secret = ini-secret

[http]
addr = :7070

[view_sync]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write INI file: %v", err)
	}

	cfg, err := LoadFromINI(path)
	if err != nil {
		t.Fatalf("LoadFromINI() failed: %v", err)
	}

	if cfg.MySQL.DSN != "ini:dsn@tcp(localhost:3306)/listar" {
		t.Errorf("Expected INI MySQL DSN, got %s", cfg.MySQL.DSN)
	}

	if cfg.HTTPAddr != ":7070" {
		t.Errorf("Expected HTTPAddr :7070, got %s", cfg.HTTPAddr)
	}

	if cfg.ViewSync.Enabled {
		t.Error("Expected view sync disabled by INI")
	}
}

func TestLoadFromINI_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listar.ini")
	content := `[mysql]
dsn = ini:dsn@tcp(localhost:3306)/listar

[jwt]
secret = ini-secret
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write INI file: %v", err)
	}

	os.Setenv("MYSQL_DSN", "env:dsn@tcp(localhost:3306)/listar")
	defer os.Unsetenv("MYSQL_DSN")

	cfg, err := LoadFromINI(path)
	if err != nil {
		t.Fatalf("LoadFromINI() failed: %v", err)
	}

	if cfg.MySQL.DSN != "env:dsn@tcp(localhost:3306)/listar" {
		t.Errorf("Environment should override INI, got %s", cfg.MySQL.DSN)
	}
}
