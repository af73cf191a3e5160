package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Geo      GeoConfig
	Import   ImportConfig
	Notify   NotifyConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	BaseURL            string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret string
	// AdminPasswordHash is a bcrypt hash of the admin password used to
	// issue API tokens. Empty disables the token endpoint.
	AdminPasswordHash string
}

// GeoConfig configures the GSI geocoding client and the office base
// point distances are measured from.
type GeoConfig struct {
	GeocodeURL    string
	BaseLatitude  float64
	BaseLongitude float64
	RatePerSecond float64
}

// ImportConfig configures the quotation import pipeline.
type ImportConfig struct {
	UploadDir   string // where uploaded PDFs are stored
	WatchGlob   string // server-side batch import pattern
	EstimateDir string // where rendered estimate files are written
}

type NotifyConfig struct {
	ResendAPIKey string
	ReportTo     string // email address receiving import summaries
	ReportFrom   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "quote-desk-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", "changeme"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Geo: GeoConfig{
			GeocodeURL:    getEnv("GSI_GEOCODE_URL", "https://msearch.gsi.go.jp/address-search/AddressSearch"),
			BaseLatitude:  getEnvAsFloat("GEO_BASE_LATITUDE", 35.6812),
			BaseLongitude: getEnvAsFloat("GEO_BASE_LONGITUDE", 139.7671),
			RatePerSecond: getEnvAsFloat("GSI_RATE_PER_SECOND", 2),
		},
		Import: ImportConfig{
			UploadDir:   getEnv("IMPORT_UPLOAD_DIR", "./data/uploads"),
			WatchGlob:   getEnv("IMPORT_WATCH_GLOB", "./data/quotes/*.pdf"),
			EstimateDir: getEnv("ESTIMATE_OUTPUT_DIR", "./data/estimates"),
		},
		Notify: NotifyConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			ReportTo:     getEnv("IMPORT_REPORT_TO", ""),
			ReportFrom:   getEnv("IMPORT_REPORT_FROM", "quote-desk@localhost"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
