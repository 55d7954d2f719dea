package server

import "sync"

// Session carries the process-lifetime protocol state. It is an explicit
// object passed through the handler so the initialize-before-invoke ordering
// stays testable in isolation.
type Session struct {
	mu          sync.RWMutex
	initialized bool
}

// NewSession creates a fresh, uninitialized session.
func NewSession() *Session {
	return &Session{}
}

// Initialized reports whether the initialize handshake completed.
func (s *Session) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// MarkInitialized records a completed handshake. Safe under concurrent
// requests; the flag only ever transitions false to true.
func (s *Session) MarkInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
}
