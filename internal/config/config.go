// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/diewo77/hoadon/internal/fonts"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Render RenderConfig
	Log    LogConfig
	App    AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// Store drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects where invoices are persisted.
type StoreConfig struct {
	Driver   string
	DataFile string // used by the file driver
	DSN      string // used by the sqlite and postgres drivers
}

// RenderConfig holds document output and font settings.
type RenderConfig struct {
	OutputDir   string
	FontDir     string
	RegularFont string
	BoldFont    string
}

// Fonts returns the font lookup settings.
func (r RenderConfig) Fonts() fonts.Config {
	return fonts.Config{Dir: r.FontDir, RegularFile: r.RegularFont, BoldFile: r.BoldFont}
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
}

// Load reads a .env file when present, then configuration from environment
// variables, with defaults suitable for local use.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", DriverFile),
			DataFile: getEnv("DATA_FILE", "invoices.json"),
			DSN:      getEnv("DATABASE_DSN", "invoices.db"),
		},
		Render: RenderConfig{
			OutputDir:   getEnv("PDF_DIR", defaultOutputDir()),
			FontDir:     getEnv("FONT_DIR", fonts.DefaultDir()),
			RegularFont: getEnv("FONT_REGULAR_FILE", "arial.ttf"),
			BoldFont:    getEnv("FONT_BOLD_FILE", "arialbd.ttf"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Dev: getEnvBool("DEV", false),
		},
	}
}

// defaultOutputDir is the user's Downloads folder.
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "output"
	}
	return filepath.Join(home, "Downloads")
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
