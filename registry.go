package main

import (
	"strings"
	"sync"
)

// Registry is the process-wide session table. Reads (name-uniqueness checks,
// lookups by handle) happen from many goroutines, so it is protected by a
// single RWMutex rather than a name-indexed secondary map: a linear scan
// over a small N is plenty fast and keeps the locking simple.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) add(s *Session) {
	r.mu.Lock()
	r.sessions[s.handle] = s
	r.mu.Unlock()
}

func (r *Registry) remove(handle string) {
	r.mu.Lock()
	delete(r.sessions, handle)
	r.mu.Unlock()
}

func (r *Registry) get(handle string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[handle]
	return s, ok
}

// nameTaken reports whether name is already the accepted display name of
// some live session, case-sensitively, per the connect acceptance rule.
func (r *Registry) nameTaken(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.name() == name {
			return true
		}
	}

	return false
}

// validateName applies the first two connect-acceptance checks in order
// (length, then nonempty with no whitespace) and reports which, if any,
// failed. The third check, uniqueness, is nameTaken.
func validateName(name string, maxLength int) (ok bool, tooLong bool, incorrect bool) {
	if len(name) > maxLength {
		return false, true, false
	}
	if name == "" || strings.ContainsAny(name, " \t\n\r") {
		return false, false, true
	}
	return true, false, false
}

// byState returns every session currently in one of the given states, used
// to build the games-list broadcast fan-out set (IDENTIFIED, CREATED,
// JOINED sessions, per the lobby's emission rule).
func (r *Registry) byState(states ...SessionState) []*Session {
	want := make(map[SessionState]bool, len(states))
	for _, s := range states {
		want[s] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Session
	for _, s := range r.sessions {
		if want[s.getState()] {
			out = append(out, s)
		}
	}

	return out
}
