package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("default expire hour = %d, expected 24", cfg.JWT.ExpireHour)
	}
	if cfg.RateLimit.AuthRPS != 5 || cfg.RateLimit.AuthBurst != 10 {
		t.Errorf("default rate limit = %v/%d, expected 5/10", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: "9000"
  mode: release
database:
  driver: postgres
  dsn: host=localhost user=app dbname=app
jwt:
  secret: file-secret
  expire_hour: 12
uploads:
  dir: /var/lib/app/uploads
  public_url: /uploads
ratelimit:
  auth_rps: 2
  auth_burst: 4
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, expected 9000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, expected postgres", cfg.Database.Driver)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("secret = %q, expected file-secret", cfg.JWT.Secret)
	}
	if cfg.Uploads.Dir != "/var/lib/app/uploads" {
		t.Errorf("uploads dir = %q", cfg.Uploads.Dir)
	}
	if cfg.RateLimit.AuthRPS != 2 || cfg.RateLimit.AuthBurst != 4 {
		t.Errorf("rate limit = %v/%d, expected 2/4", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/app")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRE_HOUR", "48")
	t.Setenv("JWT_REFRESH_EXPIRE_HOUR", "168")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, expected mysql", cfg.Database.Driver)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, expected env-secret", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpireHour != 48 {
		t.Errorf("expire hour = %d, expected 48", cfg.JWT.ExpireHour)
	}
	if cfg.JWT.RefreshExpireHour != 168 {
		t.Errorf("refresh expire hour = %d, expected 168", cfg.JWT.RefreshExpireHour)
	}
}

func TestLoad_BadExpireHourIgnored(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOUR", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expire hour = %d, expected default 24", cfg.JWT.ExpireHour)
	}
}
