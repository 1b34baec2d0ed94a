package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Photo storage strategies. The choice changes the shape of the persisted
// photo metadata, so it is an explicit configuration option rather than a
// silent default.
const (
	PhotoStorageFile   = "file"
	PhotoStorageBase64 = "base64"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	CORS     CORSConfig
	Email    EmailConfig
	Uploads  UploadsConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AdminConfig holds the shared admin credential. The dashboard uses a single
// shared secret, not per-user accounts: whoever presents the configured
// password gets the session cookie.
type AdminConfig struct {
	Password     string // plain credential, compared in constant time
	PasswordHash string // bcrypt hash, takes precedence over Password
	CookieSecure bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	Enabled     bool
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	NotifyEmail string // operator address that receives submission notifications
}

// UploadsConfig holds car photo storage configuration
type UploadsConfig struct {
	Strategy string // "file" or "base64"
	Dir      string // filesystem directory for the "file" strategy
}

var globalConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	smtpUser := getEnv("SMTP_USER", "")

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Trifecta Collections API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvAsBool("DEBUG", false),
			Port:    getEnv("PORT", "8000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:///./trifecta.db"),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			CookieSecure: getEnvAsBool("ADMIN_COOKIE_SECURE", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_HOSTS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"*"},
			MaxAge:         86400,
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:    getEnv("SMTP_HOST", ""),
			SMTPPort:    getEnvAsInt("SMTP_PORT", 587),
			Username:    smtpUser,
			Password:    getEnv("SMTP_PASS", ""),
			FromEmail:   getEnv("EMAIL_FROM", smtpUser),
			FromName:    getEnv("EMAIL_FROM_NAME", "Trifecta Collections"),
			NotifyEmail: getEnv("NOTIFY_EMAIL", smtpUser),
		},
		Uploads: UploadsConfig{
			Strategy: getEnv("UPLOADS_STRATEGY", PhotoStorageFile),
			Dir:      getEnv("UPLOADS_DIR", "public/uploads"),
		},
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	globalConfig = config
	return config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	switch cfg.Uploads.Strategy {
	case PhotoStorageFile, PhotoStorageBase64:
	default:
		return fmt.Errorf("UPLOADS_STRATEGY must be %q or %q, got %q",
			PhotoStorageFile, PhotoStorageBase64, cfg.Uploads.Strategy)
	}
	if cfg.Uploads.Strategy == PhotoStorageFile && cfg.Uploads.Dir == "" {
		return fmt.Errorf("UPLOADS_DIR must be set when UPLOADS_STRATEGY is %q", PhotoStorageFile)
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		// Load default config if not loaded
		config, _ := Load()
		return config
	}
	return globalConfig
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

// HasCredential reports whether any admin credential is configured.
func (c *AdminConfig) HasCredential() bool {
	return c.Password != "" || c.PasswordHash != ""
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

// GetPostgresDSN converts a postgres:// URL into the keyword DSN format
// expected by the pgx-backed gorm driver. URLs already in DSN form are
// returned unchanged.
func (c *DatabaseConfig) GetPostgresDSN() string {
	if strings.Contains(c.URL, "=") {
		return c.URL
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return c.URL
	}

	host := u.Hostname()
	if host == "" {
		host = "localhost"
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	dbname := strings.TrimPrefix(u.Path, "/")
	if dbname == "" {
		dbname = "postgres"
	}
	sslmode := u.Query().Get("sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s dbname=%s sslmode=%s", host, port, dbname, sslmode)
	if u.User != nil {
		dsn += " user=" + u.User.Username()
		if password, ok := u.User.Password(); ok {
			dsn += " password=" + password
		}
	}
	return dsn
}

// GetSQLitePath extracts SQLite database path from URL
func (c *DatabaseConfig) GetSQLitePath() string {
	if strings.HasPrefix(c.URL, "sqlite:///") {
		return strings.TrimPrefix(c.URL, "sqlite:///")
	}
	return c.URL
}
