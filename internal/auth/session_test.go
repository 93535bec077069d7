package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Login(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		attempt    string
		expectedOK bool
	}{
		{
			name:       "correct password issues a token",
			configured: "hunter2",
			attempt:    "hunter2",
			expectedOK: true,
		},
		{
			name:       "wrong password is rejected",
			configured: "hunter2",
			attempt:    "hunter3",
			expectedOK: false,
		},
		{
			name:       "empty attempt is rejected",
			configured: "hunter2",
			attempt:    "",
			expectedOK: false,
		},
		{
			name:       "empty configured password disables login entirely",
			configured: "",
			attempt:    "",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSessionManager(tt.configured, time.Hour)

			token, ok := m.Login(tt.attempt)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.NotEmpty(t, token)
				assert.True(t, m.Valid(token))
			} else {
				assert.Empty(t, token)
			}
		})
	}
}

func Test_Valid_UnknownToken(t *testing.T) {
	m := NewSessionManager("hunter2", time.Hour)

	assert.False(t, m.Valid(""))
	assert.False(t, m.Valid("not-a-token"))
}

func Test_Valid_Expiry(t *testing.T) {
	m := NewSessionManager("hunter2", 30*time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	token, ok := m.Login("hunter2")
	require.True(t, ok)
	assert.True(t, m.Valid(token))

	current = current.Add(29 * time.Minute)
	assert.True(t, m.Valid(token), "still inside the TTL")

	current = current.Add(2 * time.Minute)
	assert.False(t, m.Valid(token), "expired after the TTL")
	assert.False(t, m.Valid(token), "expired tokens stay invalid")
}

func Test_Logout(t *testing.T) {
	m := NewSessionManager("hunter2", time.Hour)

	token, ok := m.Login("hunter2")
	require.True(t, ok)

	m.Logout(token)
	assert.False(t, m.Valid(token))

	// Revoking again, or revoking garbage, is a no-op.
	m.Logout(token)
	m.Logout("unknown")
}

func Test_Login_PrunesExpiredSessions(t *testing.T) {
	m := NewSessionManager("hunter2", 10*time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	stale, ok := m.Login("hunter2")
	require.True(t, ok)

	current = current.Add(time.Hour)
	_, ok = m.Login("hunter2")
	require.True(t, ok)

	m.mu.Lock()
	_, held := m.sessions[stale]
	m.mu.Unlock()
	assert.False(t, held, "expired sessions are dropped on the next login")
}

func Test_Sessions_Independent(t *testing.T) {
	m := NewSessionManager("hunter2", time.Hour)

	first, ok := m.Login("hunter2")
	require.True(t, ok)
	second, ok := m.Login("hunter2")
	require.True(t, ok)
	require.NotEqual(t, first, second)

	m.Logout(first)
	assert.False(t, m.Valid(first))
	assert.True(t, m.Valid(second), "revoking one session leaves others alive")
}
