// Package session persists the single authenticated CRM session.
//
// The bridge serves one principal at a time: logging in replaces whatever
// session existed before, and every tool call reads the current one. Stores
// are injectable so transports that carry their own bearer token can be
// tested without touching a filesystem or Redis.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry is the validity window for a saved session. Sessions older than
// this are treated as absent and removed on the next load.
const Expiry = 24 * time.Hour

// ErrNoSession is returned by Store.Get when no usable session exists.
// A corrupt or expired record is reported the same way: the caller is
// simply not authenticated.
var ErrNoSession = errors.New("no active session")

// Session is the persisted record of an authenticated principal.
type Session struct {
	Email     string    `json:"email"`
	JWT       string    `json:"jwt"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session's age exceeds the expiry window,
// measured against wall-clock now.
func (s *Session) IsExpired() bool {
	return time.Since(s.CreatedAt) > Expiry
}

// TokenClaims is the subset of bearer-token claims surfaced to callers.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the session's bearer token without verifying its
// signature. The token is otherwise opaque to the bridge; the backend is
// the only party that validates it. A token that does not parse as a JWT
// (Telegram pseudo-tokens, plain API keys) yields nil.
func (s *Session) Claims() *TokenClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.JWT, claims); err != nil {
		return nil
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out
}

// Store is a single-slot session store. Put overwrites any previous
// session; Get returns ErrNoSession when no valid, unexpired record
// exists; Delete is idempotent.
type Store interface {
	Put(session *Session) error
	Get() (*Session, error)
	Delete() error
}
