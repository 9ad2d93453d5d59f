package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Gemini   GeminiConfig
	Market   MarketConfig
	Backup   BackupConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// GeminiConfig holds the credentials and model used for market data, news and tax text.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// MarketConfig controls how live market data is refreshed.
type MarketConfig struct {
	// RefreshSchedule is a cron expression; "off" in the environment disables the scheduled refresh.
	RefreshSchedule string
	// YahooFallback fills quotes Gemini could not find from Yahoo Finance.
	YahooFallback bool
	// YahooSymbolSuffix is appended to tickers before querying Yahoo (".SA" for B3).
	YahooSymbolSuffix string
}

// BackupConfig holds the key used to seal ledger exports.
type BackupConfig struct {
	// Key is a base64 fernet key. Empty means exports are plain JSON.
	Key string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	yahooFallback, err := strconv.ParseBool(getEnv("YAHOO_FALLBACK", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid YAHOO_FALLBACK: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investpro.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Market: MarketConfig{
			RefreshSchedule:   refreshSchedule(getEnv("MARKET_REFRESH_SCHEDULE", "*/15 * * * *")),
			YahooFallback:     yahooFallback,
			YahooSymbolSuffix: getEnv("YAHOO_SYMBOL_SUFFIX", ".SA"),
		},
		Backup: BackupConfig{
			Key: os.Getenv("BACKUP_KEY"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// refreshSchedule maps "off" to an empty schedule.
func refreshSchedule(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), "off") {
		return ""
	}
	return value
}
