package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "AI_PROVIDER", "AI_API_KEY", "GEMINI_API_KEY", "AI_BACKEND_URL",
		"DATABASE_DRIVER", "DATABASE_DSN", "MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "offline", cfg.AI.Provider)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxBytes)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9000
  apiKeys:
    dashboard: secret
ai:
  provider: OpenAI
  apiKey: k
  model: gpt-4o-mini
chat:
  timeout: 5s
  greeting: true
database:
  driver: mysql
  host: db
  port: 3306
  user: app
  password: pw
  name: lexguard
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKeys["dashboard"])
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.Chat.Timeout)
	assert.True(t, cfg.Chat.Greeting)
	assert.Equal(t, "app:pw@tcp(db:3306)/lexguard?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("GEMINI_API_KEY", "gemini")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://u@h/db")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")

	cfg, err := Load(writeConfig(t, "server:\n  port: 7000\n"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.AI.APIKey)
	assert.Equal(t, "postgres://u@h/db", cfg.PostgresDSN())
	assert.True(t, cfg.Minio.Enabled)

	t.Setenv("AI_API_KEY", "primary")
	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.AI.APIKey)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "ai:\n  provider: openai\n"))
	assert.ErrorContains(t, err, "apiKey")

	_, err = Load(writeConfig(t, "ai:\n  provider: backend\n"))
	assert.ErrorContains(t, err, "backendURL")

	_, err = Load(writeConfig(t, "ai:\n  provider: magic\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "database:\n  driver: oracle\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "minio:\n  enabled: true\n"))
	assert.ErrorContains(t, err, "minio.endpoint")
}

func TestValidateRejectsNegativeIntervals(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"sessions: {sweepInterval: -1s}":        "sessions.sweepInterval",
		"sessions: {ttl: -5m}":                  "sessions.ttl",
		"chat: {timeout: -1s}":                  "chat.timeout",
		"ai: {timeout: -10s}":                   "ai.timeout",
		"server: {rateLimit: {capacity: -1}}":   "server.rateLimit.capacity",
		"server: {rateLimit: {refillRate: -2}}": "server.rateLimit.refillRate",
		"upload: {maxBytes: -1}":                "upload.maxBytes",
	}
	for body, field := range cases {
		_, err := Load(writeConfig(t, body+"\n"))
		assert.ErrorContains(t, err, field, body)
	}
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "server: [oops"))
	assert.Error(t, err)
}
