package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://localhost/soccer?sslmode=disable",
		"JWT_SECRET_KEY":      "secret",
		"ADMIN_PASSWORD_HASH": "$2a$10$hash",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "*/15 * * * *", cfg.StandingsCron)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.ExportEnabled())
	assert.False(t, cfg.EmailEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["SERVER_PORT"] = "9090"
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example, https://b.example ,"
	env["AUTO_MIGRATE"] = "true"
	env["LOG_LEVEL"] = "debug"
	env["R2_ACCOUNT_ID"] = "acc"
	env["R2_BUCKET_NAME"] = "reports"
	env["SMTP_HOST"] = "smtp.example"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.ExportEnabled())
	assert.True(t, cfg.EmailEnabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing database url", func(m map[string]string) { delete(m, "DATABASE_URL") }},
		{"missing jwt key", func(m map[string]string) { delete(m, "JWT_SECRET_KEY") }},
		{"missing admin hash", func(m map[string]string) { delete(m, "ADMIN_PASSWORD_HASH") }},
		{"bad port", func(m map[string]string) { m["SERVER_PORT"] = "abc" }},
		{"port out of range", func(m map[string]string) { m["SERVER_PORT"] = "70000" }},
		{"bad auto migrate", func(m map[string]string) { m["AUTO_MIGRATE"] = "maybe" }},
		{"bad log level", func(m map[string]string) { m["LOG_LEVEL"] = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)
			_, err := FromEnv(envFrom(env))
			assert.Error(t, err)
		})
	}
}
