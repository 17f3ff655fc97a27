package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
api:
  environment: test
  port: "8080"
  jwt_signing_key: secret
  token_ttl: 2h
  allowed_cors_domains:
    - http://localhost:5173
gin:
  mode: test
postgres:
  host: db
  port: "5432"
  user: stadium
  password: pw
  db: stadium
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, 2*time.Hour, conf.API.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, conf.API.CORSDomains())
	assert.Equal(t, "disable", conf.Postgres.SSLMode)
	assert.Equal(t, 100, conf.Pagination.MaxLimit)
	assert.Equal(t, "stadium", conf.NATS.SubjectPrefix)
	assert.Contains(t, conf.Postgres.DSN(), "host=db")

	key, ttl := conf.API.Token()
	assert.Equal(t, []byte("secret"), key)
	assert.Equal(t, 2*time.Hour, ttl)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9999")

	conf, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "9999", conf.API.Port)
}

func TestLoad_MissingSigningKey(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  port: \"1\"\ngin:\n  mode: test\npostgres:\n  host: x\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestAPIConfig_ApplyKeepsSigningKey(t *testing.T) {
	conf := &APIConfig{JWTSigningKey: "secret", TokenTTL: time.Hour}

	conf.apply(&APIConfig{
		JWTSigningKey:      "rotated",
		TokenTTL:           2 * time.Hour,
		AllowedCORSDomains: []string{"https://example.com"},
		CookieSecure:       true,
	})

	key, ttl := conf.Token()
	assert.Equal(t, []byte("secret"), key)
	assert.Equal(t, 2*time.Hour, ttl)
	assert.Equal(t, []string{"https://example.com"}, conf.CORSDomains())
	assert.True(t, conf.SecureCookie())
}
