// Package lifecycle coordinates the restart affordance: a handler
// marks the process for restart, the serve loop observes the request
// and shuts down, and the process then relaunches itself.
package lifecycle

import "sync"

// Manager tracks one restart request. The first request wins; the
// serve loop watches Done to begin shutdown.
type Manager struct {
	mu        sync.Mutex
	requested bool
	done      chan struct{}
}

// NewManager creates a manager with no restart pending
func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

// Request marks the process for restart. Idempotent; calls after the
// first are no-ops.
func (m *Manager) Request() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.requested {
		return
	}
	m.requested = true
	close(m.done)
}

// Requested reports whether a restart has been asked for
func (m *Manager) Requested() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requested
}

// Done is closed once a restart has been requested
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
