package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"printshop-backend/internal/database"
	"printshop-backend/internal/models"
)

// SessionTTL is the fixed lifetime of an admin session.
const SessionTTL = 24 * time.Hour

const issuer = "printshop"

var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore persists issued sessions. GetSession returns
// database.ErrNotFound for unknown tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, session models.AdminSession) error
	GetSession(ctx context.Context, token string) (*models.AdminSession, error)
	PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Authority issues admin session tokens and validates them.
//
// A token is an HS256 JWT whose jti is the random session id stored in the
// SessionStore. Verification requires both a good signature and a live
// session row, so sessions can still be revoked by deleting rows.
type Authority struct {
	credentials CredentialVerifier
	sessions    SessionStore
	secret      []byte
	now         func() time.Time
}

type Option func(*Authority)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		a.now = now
	}
}

func NewAuthority(credentials CredentialVerifier, sessions SessionStore, secret []byte, opts ...Option) *Authority {
	a := &Authority{
		credentials: credentials,
		sessions:    sessions,
		secret:      secret,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login checks the credentials and, on success, stores a new session valid
// for SessionTTL and returns its token.
func (a *Authority) Login(ctx context.Context, username, password string) (string, error) {
	if !a.credentials.Verify(username, password) {
		return "", ErrInvalidCredentials
	}

	now := a.now().UTC()
	session := models.AdminSession{
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.Token,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify reports whether token belongs to a live session. Unknown, forged,
// malformed and expired tokens all yield false without an error; an error
// means the session store could not be read.
func (a *Authority) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return false, nil
	}

	session, err := a.sessions.GetSession(ctx, claims.ID)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return session.ValidAt(a.now()), nil
}

// PruneExpired deletes sessions that can no longer verify and reports how
// many were removed.
func (a *Authority) PruneExpired(ctx context.Context) (int64, error) {
	return a.sessions.PruneExpiredSessions(ctx, a.now())
}

// RandomSecret returns a fresh 32-byte signing key.
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return b, nil
}
