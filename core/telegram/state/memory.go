package state

import (
	"sync"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager implementation.
// Sessions live only as long as the process; fine for a single instance.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session state and a copy of its scratch data.
// Unknown users get an idle session with empty data.
func (m *memoryManager) Get(userID int64) (State, map[string]any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return StateIdle, map[string]any{}
	}
	data := make(map[string]any, len(sess.Data))
	for k, v := range sess.Data {
		data[k] = v
	}
	return sess.State, data
}

// Apply sets the state and merges the patch into the session scratch data.
func (m *memoryManager) Apply(userID int64, st State, patch map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{Data: make(map[string]any)}
		m.sessions[userID] = sess
	}
	sess.State = st
	for k, v := range patch {
		sess.Data[k] = v
	}
}

// SetState updates only the state, keeping scratch data intact.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{Data: make(map[string]any)}
		m.sessions[userID] = sess
	}
	sess.State = st
}

// GetState returns the current state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// Clear removes the entire session for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// InProgress reports whether the user currently has an active conversation.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.State != StateIdle
}
