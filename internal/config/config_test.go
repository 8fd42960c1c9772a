package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "localhost", c.Database.Host)
	assert.Equal(t, "doit", c.Database.Name)
	assert.Equal(t, int32(5), c.Database.MaxConns)
	assert.True(t, c.Database.AutoMigrate)
	assert.Equal(t, 10*time.Hour, c.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"*"}, c.CORS.AllowedOrigins)
	assert.Equal(t, "info", c.Log.Level)
	assert.NoError(t, c.Validate())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef-env")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, "db.internal", c.Database.Host)
	assert.Equal(t, int32(12), c.Database.MaxConns)
	assert.False(t, c.Database.AutoMigrate)
	assert.Equal(t, 15*time.Minute, c.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORS.AllowedOrigins)
	assert.Equal(t, "debug", c.Log.Level)
	assert.False(t, c.UsesDefaultSecret())
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: "7070"
  read_timeout: 2s
database:
  host: yaml-host
  name: notes
jwt:
  secret: yaml-secret-yaml-secret-yaml-secret
  access_token_ttl: 1h
log:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("DB_HOST", "env-host")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", c.Server.Port)
	assert.Equal(t, 2*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "env-host", c.Database.Host)
	assert.Equal(t, "notes", c.Database.Name)
	assert.Equal(t, "yaml-secret-yaml-secret-yaml-secret", c.JWT.Secret)
	assert.Equal(t, time.Hour, c.JWT.AccessTokenTTL)
	assert.Equal(t, "console", c.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"zero ttl", func(c *Config) { c.JWT.AccessTokenTTL = 0 }},
		{"no db name", func(c *Config) { c.Database.Name = "" }},
		{"bad port", func(c *Config) { c.Server.Port = "http" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := Default()
	c.Database.Password = "pw"

	assert.Equal(t, "postgres://postgres:pw@localhost:5432/doit?sslmode=disable&connect_timeout=10", c.GetDSN())
}

func TestIsGoogleOAuthConfigured(t *testing.T) {
	c := Default()
	assert.False(t, c.IsGoogleOAuthConfigured())

	c.GoogleOAuth.ClientID = "id"
	c.GoogleOAuth.ClientSecret = "secret"
	assert.True(t, c.IsGoogleOAuthConfigured())
}
