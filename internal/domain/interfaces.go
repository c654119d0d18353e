package domain

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetLogFormat() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseServiceRoleKey() string
	// GetSupabaseJWTSecret enables local HS256 token verification when set.
	GetSupabaseJWTSecret() string
	GetAdminSecret() string
	GetTimezone() string
	GetExpirySweepSchedule() string
	IsExpirySweepEnabled() bool
	GetAllowedOrigins() []string
}
