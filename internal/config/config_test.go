package config

import "testing"

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_JWT_SECRET",
		"ADMIN_API_SECRET", "APP_TIMEZONE", "EXPIRY_SWEEP_SCHEDULE",
		"EXPIRY_SWEEP_ENABLED", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetLogFormat() != "json" {
		t.Fatalf("expected default log format json, got %s", cfg.GetLogFormat())
	}
	if cfg.GetSupabaseURL() != "" {
		t.Fatalf("expected default supabase url empty, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "" {
		t.Fatalf("expected default supabase key empty, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetSupabaseJWTSecret() != "" {
		t.Fatalf("expected default jwt secret empty, got %s", cfg.GetSupabaseJWTSecret())
	}
	if cfg.GetAdminSecret() != "" {
		t.Fatalf("expected default admin secret empty, got %s", cfg.GetAdminSecret())
	}
	if cfg.GetTimezone() != "UTC" {
		t.Fatalf("expected default timezone UTC, got %s", cfg.GetTimezone())
	}
	if cfg.GetExpirySweepSchedule() != "@every 15m" {
		t.Fatalf("expected default sweep schedule, got %s", cfg.GetExpirySweepSchedule())
	}
	if !cfg.IsExpirySweepEnabled() {
		t.Fatalf("expected sweep enabled by default")
	}
	if len(cfg.GetAllowedOrigins()) != 2 {
		t.Fatalf("expected 2 default origins, got %v", cfg.GetAllowedOrigins())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
	t.Setenv("ADMIN_API_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "Africa/Abidjan")
	t.Setenv("EXPIRY_SWEEP_SCHEDULE", "0 * * * *")
	t.Setenv("EXPIRY_SWEEP_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://finderid.app, https://admin.finderid.app ,")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetLogFormat() != "text" {
		t.Fatalf("expected log format text, got %s", cfg.GetLogFormat())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("expected supabase key test-key, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetSupabaseServiceRoleKey() != "service-key" {
		t.Fatalf("expected service role key, got %s", cfg.GetSupabaseServiceRoleKey())
	}
	if cfg.GetSupabaseJWTSecret() != "jwt-secret" {
		t.Fatalf("expected jwt secret, got %s", cfg.GetSupabaseJWTSecret())
	}
	if cfg.GetAdminSecret() != "secret" {
		t.Fatalf("expected admin secret secret, got %s", cfg.GetAdminSecret())
	}
	if cfg.GetTimezone() != "Africa/Abidjan" {
		t.Fatalf("expected timezone Africa/Abidjan, got %s", cfg.GetTimezone())
	}
	if cfg.GetExpirySweepSchedule() != "0 * * * *" {
		t.Fatalf("expected hourly schedule, got %s", cfg.GetExpirySweepSchedule())
	}
	if cfg.IsExpirySweepEnabled() {
		t.Fatalf("expected sweep disabled")
	}
	origins := cfg.GetAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://finderid.app" || origins[1] != "https://admin.finderid.app" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("EXPIRY_SWEEP_ENABLED", "sometimes")
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if !cfg.IsExpirySweepEnabled() {
		t.Fatalf("expected unparsable bool to fall back to true")
	}
	if len(cfg.GetAllowedOrigins()) != 2 {
		t.Fatalf("expected default origins, got %v", cfg.GetAllowedOrigins())
	}
}
