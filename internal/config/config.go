package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	PasswordHashBcrypt   = "bcrypt"
	PasswordHashArgon2id = "argon2id"
)

var (
	ErrUnknownEnv               = errors.New("unknown env")
	ErrSigningKeyRequired       = errors.New("jwt signing key is required")
	ErrUnknownPasswordAlgorithm = errors.New("unknown password hash algorithm")
)

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Password PasswordConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"5000"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	// URL takes precedence over the discrete connection fields.
	URL            string        `env:"POSTGRES_URL"`
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE" env-default:"perntodo"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxConns       int32         `env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

// ConnString returns the connection string handed to pgxpool.
func (c PostgresConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

type JWTConfig struct {
	SigningKey string `env:"JWT_SIGNING_KEY" env-required:"true"`
	Issuer     string `env:"JWT_ISSUER"`
	// TokenTTL of zero issues tokens without an expiration claim.
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL" env-default:"0s"`
}

type PasswordConfig struct {
	Algorithm  string `env:"PASSWORD_HASH_ALGORITHM" env-default:"bcrypt"`
	BcryptCost int    `env:"PASSWORD_BCRYPT_COST" env-default:"10"`
}

// Validate reports configuration that cleanenv accepts but the server
// cannot run with.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEnv, c.Env)
	}

	if c.JWT.SigningKey == "" {
		return ErrSigningKeyRequired
	}

	switch c.Password.Algorithm {
	case PasswordHashBcrypt, PasswordHashArgon2id:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPasswordAlgorithm, c.Password.Algorithm)
	}
	return nil
}
