package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Defaults apply when nothing is set.
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "development")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Server.Port)
		}
		if cfg.Ledger.SMSRateWindow != time.Minute {
			t.Errorf("expected sms window 1m, got %s", cfg.Ledger.SMSRateWindow)
		}
		if cfg.Server.LogLevel != slog.LevelInfo {
			t.Errorf("expected info level, got %s", cfg.Server.LogLevel)
		}
	})

	// Set values override defaults and are normalised.
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "SQLite")
		t.Setenv("APP_BASE_URL", "https://ledger.example.com/")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("SMS_RATE_LIMIT", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.Driver != "sqlite" {
			t.Errorf("expected sqlite, got %q", cfg.Database.Driver)
		}
		if cfg.Email.AppBaseURL != "https://ledger.example.com" {
			t.Errorf("expected trailing slash trimmed, got %q", cfg.Email.AppBaseURL)
		}
		if cfg.Server.LogLevel != slog.LevelDebug {
			t.Errorf("expected debug level, got %s", cfg.Server.LogLevel)
		}
		if cfg.Ledger.SMSRateLimit != 5 {
			t.Errorf("expected limit 5, got %d", cfg.Ledger.SMSRateLimit)
		}
	})

	// Every malformed variable is reported, not just the first.
	t.Run("malformed values", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "eighty")
		t.Setenv("SMS_RATE_WINDOW", "soon")

		_, err := Load()
		if err == nil {
			t.Fatal("expected an error")
		}
		for _, key := range []string{"SERVER_PORT", "SMS_RATE_WINDOW"} {
			if !strings.Contains(err.Error(), key) {
				t.Errorf("expected %s in %q", key, err)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Environment: "development"},
			Database: DatabaseConfig{Driver: "postgres"},
			JWT:      JWTConfig{Secret: defaultJWTSecret, AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
			Email:    EmailConfig{PollInterval: time.Second, BatchSize: 1},
			Ledger:   LedgerConfig{SMSRateLimit: 1, SMSRateWindow: time.Minute},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "DATABASE_DRIVER"},
		{"default secret in production", func(c *Config) { c.Server.Environment = "production" }, "JWT_SECRET"},
		{"zero rate limit", func(c *Config) { c.Ledger.SMSRateLimit = 0 }, "SMS_RATE_LIMIT"},
		{"negative expiry", func(c *Config) { c.JWT.AccessTokenExpiry = -time.Second }, "JWT_EXPIRY"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "SERVER_PORT"},
	}
	for _, tt := range tests {
		// Each broken value names the variable to fix.
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}
