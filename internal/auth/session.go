// Package auth implements the admin panel gate: a single static password
// exchanged for a short-lived session token. Sessions are held in process
// memory; a restart logs every admin out, which is acceptable for a
// single-operator panel.
package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager verifies the admin password and tracks issued sessions.
type SessionManager struct {
	password string
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
	now      func() time.Time
}

// NewSessionManager creates a SessionManager for the configured password.
func NewSessionManager(password string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		password: password,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the password in constant time and, on success, issues a
// session token valid for the configured TTL.
func (m *SessionManager) Login(password string) (string, bool) {
	if m.password == "" {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", false
	}

	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	m.sessions[token] = m.now().Add(m.ttl)
	return token, true
}

// Valid reports whether token is an unexpired session.
func (m *SessionManager) Valid(token string) bool {
	if token == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}

// Logout revokes a session. Revoking an unknown token is a no-op.
func (m *SessionManager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *SessionManager) pruneLocked() {
	now := m.now()
	for token, expiry := range m.sessions {
		if now.After(expiry) {
			delete(m.sessions, token)
		}
	}
}
