package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a username/password pair may open an
// admin session.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentials accepts exactly one configured pair.
type StaticCredentials struct {
	Username string
	Password string
}

func (c StaticCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK && c.Password != ""
}

// BcryptCredentials accepts one username whose password is stored as a
// bcrypt hash.
type BcryptCredentials struct {
	username string
	hash     []byte
}

func NewBcryptCredentials(username, passwordHash string) (*BcryptCredentials, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &BcryptCredentials{username: username, hash: []byte(passwordHash)}, nil
}

func (c *BcryptCredentials) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}
