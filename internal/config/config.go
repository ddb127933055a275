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

// Config holds all configuration for the application. It is loaded once at
// process start and never mutated afterwards.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration. A single symmetric secret signs both
// token kinds; the refresh lifetime must exceed the access lifetime.
type JWTConfig struct {
	Secret           string
	AccessTokenHours int
	RefreshTokenDays int
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir string
}

// AccessTokenLifetime returns the access token validity window
func (j JWTConfig) AccessTokenLifetime() time.Duration {
	return time.Duration(j.AccessTokenHours) * time.Hour
}

// RefreshTokenLifetime returns the refresh token validity window
func (j JWTConfig) RefreshTokenLifetime() time.Duration {
	return time.Duration(j.RefreshTokenDays) * 24 * time.Hour
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "8080"),
		Database: loadDatabaseConfig(),
		JWT:      loadJWTConfig(),
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "./uploads/trips"),
		},
	}

	if config.JWT.RefreshTokenLifetime() <= config.JWT.AccessTokenLifetime() {
		return nil, fmt.Errorf("refresh token lifetime (%dd) must exceed access token lifetime (%dh)",
			config.JWT.RefreshTokenDays, config.JWT.AccessTokenHours)
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "trip_planner"),
	}
}

// loadJWTConfig loads JWT config
func loadJWTConfig() JWTConfig {
	accessHours, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_HOURS", "24"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", "default_secret"),
		AccessTokenHours: accessHours,
		RefreshTokenDays: refreshDays,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://tripplanner.app"
	}
	return origins
}
