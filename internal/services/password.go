package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/adanyl0v/pern-todo/internal/config"
)

const argon2idHashPrefix = "$argon2id$"

// bcrypt only reads the first 72 bytes of a password.
const bcryptMaxPasswordLen = 72

// PasswordHasher hashes new passwords with one algorithm but verifies
// hashes produced by any supported one, so switching the algorithm
// doesn't lock out existing users.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) (bool, error)
}

type passwordHasherImpl struct {
	algorithm  string
	bcryptCost int
}

func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch algorithm {
	case config.PasswordHashBcrypt:
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid bcrypt cost: %d", bcryptCost)
		}
	case config.PasswordHashArgon2id:
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownPasswordAlgorithm, algorithm)
	}

	return &passwordHasherImpl{
		algorithm:  algorithm,
		bcryptCost: bcryptCost,
	}, nil
}

func (h *passwordHasherImpl) Hash(password string) (string, error) {
	if h.algorithm == config.PasswordHashArgon2id {
		hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return hash, nil
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptPassword(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *passwordHasherImpl) Compare(password, hash string) (bool, error) {
	if strings.HasPrefix(hash, argon2idHashPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, hash)
		if err != nil {
			return false, fmt.Errorf("failed to compare password: %w", err)
		}
		return match, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptPassword(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

// bcryptPassword truncates longer passwords instead of rejecting them.
func bcryptPassword(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordLen {
		b = b[:bcryptMaxPasswordLen]
	}
	return b
}
