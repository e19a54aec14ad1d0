package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNotConfigured      = errors.New("admin login is not configured")
)

// AdminAuthenticator checks the admin password against a bcrypt hash taken
// from configuration.
type AdminAuthenticator struct {
	hash []byte
}

// NewAdminAuthenticator creates an authenticator for the given bcrypt hash.
// An empty hash rejects every password with ErrNotConfigured.
func NewAdminAuthenticator(passwordHash string) *AdminAuthenticator {
	return &AdminAuthenticator{hash: []byte(passwordHash)}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *AdminAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Authenticate compares the password with the configured hash.
func (a *AdminAuthenticator) Authenticate(_ context.Context, credential string) (string, error) {
	if len(a.hash) == 0 {
		return "", ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return "", ErrInvalidCredentials
	}
	return AdminSubject, nil
}

// HashPassword validates password and returns the bcrypt hash to put in
// ADMIN_PASSWORD_HASH.
func (a *AdminAuthenticator) HashPassword(password string) (string, error) {
	if err := a.ValidateCredential(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
