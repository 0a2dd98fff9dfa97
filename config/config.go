package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DBDriver    string
	DatabaseURL string
	ServerPort  int
	LogLevel    slog.Level

	JWTSecretKey      string
	OrganizerTokenTTL time.Duration

	// AdminPIN: PIN в открытом виде или bcrypt-хеш (ADMIN_PIN_HASH).
	AdminPIN         string
	AdminMaxAttempts int
	AdminLockout     time.Duration

	AllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	GoogleServiceAccountJSON string
	SpreadsheetID            string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:    getEnvOrDefault("DB_DRIVER", "sqlite3"),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", "fast.db"),

		JWTSecretKey: strings.TrimSpace(os.Getenv("JWT_SECRET_KEY")),

		R2AccountID:       strings.TrimSpace(os.Getenv("R2_ACCOUNT_ID")),
		R2AccessKeyID:     strings.TrimSpace(os.Getenv("R2_ACCESS_KEY_ID")),
		R2SecretAccessKey: strings.TrimSpace(os.Getenv("R2_SECRET_ACCESS_KEY")),
		R2BucketName:      strings.TrimSpace(os.Getenv("R2_BUCKET_NAME")),
		R2PublicBaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("R2_PUBLIC_BASE_URL")), "/"),

		GoogleServiceAccountJSON: strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")),
		SpreadsheetID:            strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")),
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", cfg.DBDriver)
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	if hash := strings.TrimSpace(os.Getenv("ADMIN_PIN_HASH")); hash != "" {
		cfg.AdminPIN = hash
	} else {
		cfg.AdminPIN = strings.TrimSpace(os.Getenv("ADMIN_PIN"))
	}
	if cfg.AdminPIN == "" {
		return nil, fmt.Errorf("ADMIN_PIN or ADMIN_PIN_HASH environment variable must be set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if cfg.OrganizerTokenTTL, err = parseDuration("ORGANIZER_TOKEN_TTL", "12h"); err != nil {
		return nil, err
	}
	if cfg.AdminLockout, err = parseDuration("ADMIN_LOCKOUT", "5m"); err != nil {
		return nil, err
	}

	attempts, err := strconv.Atoi(getEnvOrDefault("ADMIN_MAX_ATTEMPTS", "0"))
	if err != nil || attempts < 0 {
		return nil, fmt.Errorf("ADMIN_MAX_ATTEMPTS must be a non-negative integer, got %q", os.Getenv("ADMIN_MAX_ATTEMPTS"))
	}
	cfg.AdminMaxAttempts = attempts

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.AllowedOrigins = splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	return cfg, nil
}

// SheetsConfigured: выгрузка в Google Sheets включается только при обоих параметрах.
func (c *Config) SheetsConfigured() bool {
	return c.GoogleServiceAccountJSON != "" && c.SpreadsheetID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
