package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "change-me-in-production-0123456789abcdef"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// JWT configuration
	JWT JWTConfig `yaml:"jwt"`

	// Google OAuth configuration
	GoogleOAuth GoogleOAuthConfig `yaml:"google_oauth"`

	// CORS configuration
	CORS CORSConfig `yaml:"cors"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Name         string        `yaml:"name"`
	SSLMode      string        `yaml:"sslmode"`
	MaxConns     int32         `yaml:"max_conns"`
	MinConns     int32         `yaml:"min_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
	ConnTimeout  time.Duration `yaml:"conn_timeout"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
	AutoMigrate  bool          `yaml:"auto_migrate"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string        `yaml:"secret"`
	Issuer         string        `yaml:"issuer"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	// FrontendURL receives the issued token after a successful Google sign-in.
	// When empty the callback answers with JSON instead of redirecting.
	FrontendURL string `yaml:"frontend_url"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "",
			Name:         "doit",
			SSLMode:      "disable",
			MaxConns:     5,
			MinConns:     0,
			MaxLifetime:  time.Hour,
			ConnTimeout:  10 * time.Second,
			QueryTimeout: 30 * time.Second,
			AutoMigrate:  true,
		},
		JWT: JWTConfig{
			Secret:         defaultJWTSecret,
			Issuer:         "doit",
			AccessTokenTTL: 10 * time.Hour,
		},
		GoogleOAuth: GoogleOAuthConfig{
			RedirectURL: "http://localhost:8080/api/auth/google/callback",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file at path
// (CONFIG_FILE when path is empty), then environment variables, which always win.
func Load(path string) (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		_ = godotenv.Load(".env")
	}

	config := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getDurationEnv("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxConns = getInt32Env("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getInt32Env("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.MaxLifetime = getDurationEnv("DB_MAX_LIFETIME", c.Database.MaxLifetime)
	c.Database.ConnTimeout = getDurationEnv("DB_CONN_TIMEOUT", c.Database.ConnTimeout)
	c.Database.QueryTimeout = getDurationEnv("DB_QUERY_TIMEOUT", c.Database.QueryTimeout)
	c.Database.AutoMigrate = getBoolEnv("DB_AUTO_MIGRATE", c.Database.AutoMigrate)

	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.JWT.Issuer = getEnv("JWT_ISSUER", c.JWT.Issuer)
	c.JWT.AccessTokenTTL = getDurationEnv("JWT_ACCESS_TTL", c.JWT.AccessTokenTTL)

	c.GoogleOAuth.ClientID = getEnv("GOOGLE_CLIENT_ID", c.GoogleOAuth.ClientID)
	c.GoogleOAuth.ClientSecret = getEnv("GOOGLE_CLIENT_SECRET", c.GoogleOAuth.ClientSecret)
	c.GoogleOAuth.RedirectURL = getEnv("GOOGLE_REDIRECT_URL", c.GoogleOAuth.RedirectURL)
	c.GoogleOAuth.FrontendURL = getEnv("GOOGLE_FRONTEND_URL", c.GoogleOAuth.FrontendURL)

	c.CORS.AllowedOrigins = getStringSliceEnv("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = getStringSliceEnv("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = getStringSliceEnv("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	c.CORS.AllowCredentials = getBoolEnv("CORS_ALLOW_CREDENTIALS", c.CORS.AllowCredentials)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	// HS256 keys shorter than the hash output weaken the signature
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be positive")
	}
	if c.Database.Name == "" {
		return errors.New("DB_NAME is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", c.Server.Port)
	}
	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}

// UsesDefaultSecret reports whether the JWT secret was left at its built-in value.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == defaultJWTSecret
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
