package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/models"
)

// Claims is the token payload. Without an issuer or TTL configured
// it serializes to {"user_id":..,"iat":..}.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	logger        zerolog.Logger
	pgPool        PgxPool
	hasher        PasswordHasher
	jwtIssuer     string
	jwtSigningKey []byte
	jwtTokenTTL   time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	pgPool PgxPool,
	hasher PasswordHasher,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:        logger,
		pgPool:        pgPool,
		hasher:        hasher,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		jwtTokenTTL:   jwtTokenTTL,
	}
}

func (s *authServiceImpl) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	user := &models.User{Username: params.Username}

	const selectUserIDByUsernameQuery = `
SELECT user_id
FROM users
WHERE username = $1
`
	var existingID int64
	err := s.pgPool.QueryRow(
		ctx,
		selectUserIDByUsernameQuery,
		user.Username,
	).Scan(&existingID)
	if err == nil {
		s.logger.Error().
			Str("username", user.Username).
			Msg("user with this username already exists")
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("failed to select user by username")
		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	const insertUserQuery = `
INSERT INTO users (username,
                   password)
VALUES ($1, $2)
RETURNING user_id
`
	err = s.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.Password,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Error().
				Str("username", user.Username).
				Msg("user with this username already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("signed up user")
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (string, error) {
	user := models.User{Username: params.Username}

	const selectUserByUsernameQuery = `
SELECT user_id,
       password
FROM users
WHERE username = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		user.Username,
	).Scan(
		&user.ID,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("username", user.Username).
				Msg("user not found")
			return "", ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("failed to select user by username")
		return "", fmt.Errorf("failed to select user: %w", err)
	}

	match, err := s.hasher.Compare(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return "", err
	} else if !match {
		s.logger.Error().
			Int64("user_id", user.ID).
			Msg("passwords do not match")
		return "", ErrUserPasswordMismatch
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return "", err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("logged in")
	return token, nil
}

func (s *authServiceImpl) ParseToken(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.jwtIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.jwtIssuer))
	}

	claims := new(Claims)
	t, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) {
			return s.jwtSigningKey, nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authServiceImpl) generateToken(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.jwtIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.jwtTokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.jwtTokenTTL))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(s.jwtSigningKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
