package config

import (
	"os"
	"strconv"
	"strings"

	"finderid-api/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort             string
	LogLevel               string
	LogFormat              string
	SupabaseURL            string
	SupabaseKey            string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	AdminSecret            string
	Timezone               string
	ExpirySweepSchedule    string
	ExpirySweepEnabled     bool
	AllowedOrigins         []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:             getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		SupabaseURL:            getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:            getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseServiceRoleKey: getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnvOrDefault("SUPABASE_JWT_SECRET", ""),
		AdminSecret:            getEnvOrDefault("ADMIN_API_SECRET", ""),
		Timezone:               getEnvOrDefault("APP_TIMEZONE", "UTC"),
		ExpirySweepSchedule:    getEnvOrDefault("EXPIRY_SWEEP_SCHEDULE", "@every 15m"),
		ExpirySweepEnabled:     getEnvBoolOrDefault("EXPIRY_SWEEP_ENABLED", true),
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format (json or text)
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseServiceRoleKey returns the key used by the sweep and admin endpoints
func (c *AppConfig) GetSupabaseServiceRoleKey() string {
	return c.SupabaseServiceRoleKey
}

// GetSupabaseJWTSecret returns the project's JWT signing secret
func (c *AppConfig) GetSupabaseJWTSecret() string {
	return c.SupabaseJWTSecret
}

// GetAdminSecret returns the shared secret for admin endpoints
func (c *AppConfig) GetAdminSecret() string {
	return c.AdminSecret
}

// GetTimezone returns the IANA zone used when the caller does not send one
func (c *AppConfig) GetTimezone() string {
	return c.Timezone
}

// GetExpirySweepSchedule returns the cron schedule for the expiry sweep
func (c *AppConfig) GetExpirySweepSchedule() string {
	return c.ExpirySweepSchedule
}

// IsExpirySweepEnabled reports whether the in-process sweep should run
func (c *AppConfig) IsExpirySweepEnabled() bool {
	return c.ExpirySweepEnabled
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
