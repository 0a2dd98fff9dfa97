package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"DB_DRIVER", "DATABASE_URL", "SERVER_PORT", "LOG_LEVEL",
	"JWT_SECRET_KEY", "ORGANIZER_TOKEN_TTL",
	"ADMIN_PIN", "ADMIN_PIN_HASH", "ADMIN_MAX_ATTEMPTS", "ADMIN_LOCKOUT",
	"CORS_ALLOWED_ORIGINS",
	"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
	"GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SHEETS_SPREADSHEET_ID",
}

// setEnv очищает все переменные конфигурации и выставляет переданные.
func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	for k, v := range values {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"JWT_SECRET_KEY": "secret",
		"ADMIN_PIN":      "1234",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDriver != "sqlite3" || cfg.DatabaseURL != "fast.db" {
		t.Fatalf("db = %q %q", cfg.DBDriver, cfg.DatabaseURL)
	}
	if cfg.ServerPort != 8080 {
		t.Fatalf("port = %d", cfg.ServerPort)
	}
	if cfg.OrganizerTokenTTL != 12*time.Hour || cfg.AdminLockout != 5*time.Minute {
		t.Fatalf("durations = %v %v", cfg.OrganizerTokenTTL, cfg.AdminLockout)
	}
	if cfg.AdminMaxAttempts != 0 {
		t.Fatalf("lockout must be off by default, got %d", cfg.AdminMaxAttempts)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.SheetsConfigured() {
		t.Fatalf("sheets must be off without credentials")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_DRIVER":                    "postgres",
		"DATABASE_URL":                 "postgres://fast@localhost/fast?sslmode=disable",
		"SERVER_PORT":                  "9090",
		"LOG_LEVEL":                    "debug",
		"JWT_SECRET_KEY":               "secret",
		"ORGANIZER_TOKEN_TTL":          "30m",
		"ADMIN_PIN":                    "1234",
		"ADMIN_PIN_HASH":               "$2a$10$abcdefghijklmnopqrstuu",
		"ADMIN_MAX_ATTEMPTS":           "5",
		"ADMIN_LOCKOUT":                "1m",
		"CORS_ALLOWED_ORIGINS":         "https://a.example, ,https://b.example",
		"R2_PUBLIC_BASE_URL":           "https://pub.example.dev/",
		"GOOGLE_SERVICE_ACCOUNT_JSON":  "/etc/fast/sa.json",
		"GOOGLE_SHEETS_SPREADSHEET_ID": "sheet-id",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDriver != "postgres" || cfg.ServerPort != 9090 || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.OrganizerTokenTTL != 30*time.Minute || cfg.AdminLockout != time.Minute || cfg.AdminMaxAttempts != 5 {
		t.Fatalf("unexpected access settings: %+v", cfg)
	}
	if !strings.HasPrefix(cfg.AdminPIN, "$2a$") {
		t.Fatalf("ADMIN_PIN_HASH must take precedence, got %q", cfg.AdminPIN)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.R2PublicBaseURL != "https://pub.example.dev" {
		t.Fatalf("R2 base URL = %q", cfg.R2PublicBaseURL)
	}
	if !cfg.SheetsConfigured() {
		t.Fatalf("sheets must be configured")
	}
}

func TestLoad_Errors(t *testing.T) {
	base := map[string]string{"JWT_SECRET_KEY": "secret", "ADMIN_PIN": "1234"}
	cases := []struct {
		name     string
		override map[string]string
		want     string
	}{
		{"missing secret", map[string]string{"JWT_SECRET_KEY": ""}, "JWT_SECRET_KEY"},
		{"missing PIN", map[string]string{"ADMIN_PIN": ""}, "ADMIN_PIN"},
		{"bad driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"bad port", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"bad ttl", map[string]string{"ORGANIZER_TOKEN_TTL": "forever"}, "ORGANIZER_TOKEN_TTL"},
		{"negative lockout", map[string]string{"ADMIN_LOCKOUT": "-1m"}, "ADMIN_LOCKOUT"},
		{"negative attempts", map[string]string{"ADMIN_MAX_ATTEMPTS": "-1"}, "ADMIN_MAX_ATTEMPTS"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := map[string]string{}
			for k, v := range base {
				values[k] = v
			}
			for k, v := range tc.override {
				values[k] = v
			}
			setEnv(t, values)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
