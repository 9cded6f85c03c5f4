package conversation

import (
	"sync"
	"time"
)

// Manager serializes message handling per conversation so replies leave in the
// order messages arrived. Different conversations run in parallel.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*convLock
}

type convLock struct {
	mu       sync.Mutex
	lastUsed time.Time
	// holders counts goroutines holding or waiting on mu.
	holders int
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*convLock),
	}
}

// WithLock runs fn while holding the lock for conversationID.
func (m *Manager) WithLock(conversationID string, fn func() error) error {
	m.mu.Lock()
	cl, ok := m.locks[conversationID]
	if !ok {
		cl = &convLock{}
		m.locks[conversationID] = cl
	}
	cl.holders++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		cl.holders--
		cl.lastUsed = time.Now()
		m.mu.Unlock()
	}()

	cl.mu.Lock()
	defer cl.mu.Unlock()
	return fn()
}

// Cleanup drops idle locks not used within maxAge.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := time.Now()
	for id, cl := range m.locks {
		if cl.holders == 0 && now.Sub(cl.lastUsed) > maxAge {
			delete(m.locks, id)
			removed++
		}
	}
	return removed
}

// Len reports how many conversations currently have a lock entry.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
