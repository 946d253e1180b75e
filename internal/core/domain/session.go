package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session is the server-held proof of authentication: the upstream bearer
// token plus the cached user identity and resolved role. Token, user and role
// are always written together — a session is either fully present or absent,
// never partial.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession builds a fresh session with a random ID and the given lifetime.
func NewSession(token string, user User, role Role, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        newSessionID(),
		Token:     token,
		User:      user,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session lifetime has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// newSessionID returns 32 hex chars of cryptographic randomness.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// rand.Read failing means the platform entropy source is broken;
		// a timestamp-derived ID is the only remaining option.
		return hex.EncodeToString([]byte(time.Now().UTC().Format("20060102150405.000000000")))[:32]
	}
	return hex.EncodeToString(b)
}
