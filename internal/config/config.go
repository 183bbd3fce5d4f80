package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Placeholders shipped with the production settings; they must be overridden.
	PlaceholderSecretKey = "your-secret-key-here"
	PlaceholderUsername  = "admin"
	PlaceholderPassword  = "changeme"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Static    StaticConfig
	CORS      CORSConfig
	BasicAuth BasicAuthConfig
	Log       LogConfig
}

type AppConfig struct {
	Name         string
	Environment  string
	Port         string
	Debug        bool
	SecretKey    string
	AllowedHosts []string
}

type DatabaseConfig struct {
	URL         string
	Driver      string // "postgres" or "sqlite"
	DSN         string
	ConnMaxAge  time.Duration
	AutoMigrate bool
}

type StaticConfig struct {
	URL      string
	Root     string
	Compress bool
	MaxAge   int // seconds
}

type CORSConfig struct {
	AllowOrigins []string
}

type BasicAuthConfig struct {
	Enabled  bool
	Username string
	Password string
}

type LogConfig struct {
	FilePath string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// Load reads the environment (and .env when present) and builds the settings
// bundle for APP_ENV.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds the settings bundle from the current process environment only.
func FromEnv() (*Config, error) {
	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))
	switch env {
	case EnvDevelopment:
		return development()
	case EnvProduction:
		return production()
	default:
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, env)
	}
}

func development() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:         "Coffee Chat API",
			Environment:  EnvDevelopment,
			Port:         getEnv("PORT", "8000"),
			Debug:        true,
			SecretKey:    getEnv("SECRET_KEY", "dev-insecure-secret-key"),
			AllowedHosts: []string{"*"},
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", "sqlite://db.sqlite3"),
			ConnMaxAge:  time.Duration(getEnvAsInt("DB_CONN_MAX_AGE", 0)) * time.Second,
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Static: StaticConfig{
			URL:  getEnv("STATIC_URL", "/static"),
			Root: getEnv("STATIC_ROOT", "staticfiles"),
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Log: LogConfig{
			FilePath: logFilePath(),
		},
	}
	if err := cfg.Database.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func production() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:         "Coffee Chat API",
			Environment:  EnvProduction,
			Port:         getEnv("PORT", "8000"),
			Debug:        false,
			SecretKey:    getEnv("SECRET_KEY", PlaceholderSecretKey),
			AllowedHosts: getEnvAsList("ALLOWED_HOSTS", []string{".onrender.com", "localhost", "127.0.0.1"}),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			ConnMaxAge:  time.Duration(getEnvAsInt("DB_CONN_MAX_AGE", 600)) * time.Second,
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Static: StaticConfig{
			URL:      getEnv("STATIC_URL", "/static"),
			Root:     getEnv("STATIC_ROOT", "staticfiles"),
			Compress: true,
			MaxAge:   getEnvAsInt("STATIC_MAX_AGE", 3600),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"https://coffee-chat-tracker.onrender.com",
				"http://localhost:3000",
			}),
		},
		BasicAuth: BasicAuthConfig{
			Enabled:  !getEnvAsBool("BASICAUTH_DISABLE", false),
			Username: getEnv("BASICAUTH_USERNAME", PlaceholderUsername),
			Password: getEnv("BASICAUTH_PASSWORD", PlaceholderPassword),
		},
		Log: LogConfig{
			FilePath: logFilePath(),
		},
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set in production")
	}
	if err := cfg.Database.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logFilePath returns "" when file logging is switched off with LOG_FILE_PATH=off.
func logFilePath() string {
	path := getEnv("LOG_FILE_PATH", "logs/app.log")
	if strings.EqualFold(path, "off") {
		return ""
	}
	return path
}

// Warnings lists settings still holding shipped placeholder values.
func (c *Config) Warnings() []string {
	var out []string
	if c.IsProduction() && c.App.SecretKey == PlaceholderSecretKey {
		out = append(out, "SECRET_KEY is using the placeholder value")
	}
	if c.BasicAuth.Enabled && c.BasicAuth.Username == PlaceholderUsername && c.BasicAuth.Password == PlaceholderPassword {
		out = append(out, "basic auth is using the default credentials")
	}
	return out
}

func (d *DatabaseConfig) resolve() error {
	driver, dsn, err := ParseDatabaseURL(d.URL)
	if err != nil {
		return err
	}
	d.Driver = driver
	d.DSN = dsn
	return nil
}

// ParseDatabaseURL maps a dj-database-url style URL onto a GORM driver name
// and the DSN that driver expects.
func ParseDatabaseURL(raw string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return "postgres", raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite database URL has no path: %q", raw)
		}
		return "sqlite", path, nil
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme: %q", raw)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated variable, dropping empty items.
func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
