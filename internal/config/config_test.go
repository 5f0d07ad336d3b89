package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "perntodo", cfg.Postgres.Database)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, "secret", cfg.JWT.SigningKey)
	assert.Zero(t, cfg.JWT.TokenTTL)
	assert.Equal(t, PasswordHashBcrypt, cfg.Password.Algorithm)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_TOKEN_TTL", "1h")
	t.Setenv("PASSWORD_HASH_ALGORITHM", PasswordHashArgon2id)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, PasswordHashArgon2id, cfg.Password.Algorithm)
}

func TestEnvReader_EmptySigningKey(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := NewEnvReader().Read()
	require.ErrorIs(t, err, ErrSigningKeyRequired)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:      EnvProd,
			JWT:      JWTConfig{SigningKey: "k"},
			Password: PasswordConfig{Algorithm: PasswordHashBcrypt},
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("unknown env", func(t *testing.T) {
		cfg := valid()
		cfg.Env = "staging"
		require.ErrorIs(t, cfg.Validate(), ErrUnknownEnv)
	})

	t.Run("missing signing key", func(t *testing.T) {
		cfg := valid()
		cfg.JWT.SigningKey = ""
		require.ErrorIs(t, cfg.Validate(), ErrSigningKeyRequired)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		cfg := valid()
		cfg.Password.Algorithm = "md5"
		require.ErrorIs(t, cfg.Validate(), ErrUnknownPasswordAlgorithm)
	})
}

func TestPostgresConfig_ConnString(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5433,
		Username: "todo",
		Password: "secret",
		Database: "perntodo",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://todo:secret@db:5433/perntodo?sslmode=disable", cfg.ConnString())

	cfg.URL = "postgres://other@elsewhere/db"
	assert.Equal(t, "postgres://other@elsewhere/db", cfg.ConnString())
}
