package services

import (
	"sync"

	"github.com/google/uuid"

	"diettracker/models"
)

// SessionManager owns every live SessionState, keyed by the session-id
// cookie. Each state belongs to exactly one browser session; the manager
// only creates and hands them out. Sessions live until the process exits.
type SessionManager struct {
	users []string

	mu       sync.Mutex
	sessions map[string]*models.SessionState
}

func NewSessionManager(users []string) *SessionManager {
	return &SessionManager{
		users:    users,
		sessions: make(map[string]*models.SessionState),
	}
}

// Resolve returns the existing session for id, or creates a fresh one.
// lastUser is the persisted preference cookie; it wins only when it names a
// known user, otherwise the first enumerated user is the default. The second
// return value reports whether a new session was created.
func (m *SessionManager) Resolve(id, lastUser string) (*models.SessionState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s, false
		}
	}

	s := &models.SessionState{
		ID:   uuid.NewString(),
		User: m.defaultUser(lastUser),
	}
	m.sessions[s.ID] = s
	return s, true
}

func (m *SessionManager) defaultUser(lastUser string) string {
	if m.KnownUser(lastUser) {
		return lastUser
	}
	return m.users[0]
}

func (m *SessionManager) KnownUser(user string) bool {
	for _, u := range m.users {
		if u == user {
			return true
		}
	}
	return false
}

func (m *SessionManager) Users() []string {
	return m.users
}
