package main

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Session is the server's record of one connected client. Its handle is
// opaque to everything except the transport layer; every other component
// addresses it by pointer rather than re-resolving a connection by id.
type Session struct {
	handle      string
	conn        *websocket.Conn
	send        chan any
	mu          sync.Mutex
	displayName string
	state       SessionState
	gameID      uint64
}

func newSession(handle string, conn *websocket.Conn) *Session {
	return &Session{
		handle: handle,
		conn:   conn,
		send:   make(chan any, 32),
		state:  StateUnidentified,
	}
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) getState() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setGame(id uint64) {
	s.mu.Lock()
	s.gameID = id
	s.mu.Unlock()
}

func (s *Session) getGame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

func (s *Session) setName(name string) {
	s.mu.Lock()
	s.displayName = name
	s.mu.Unlock()
}

func (s *Session) name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayName
}

// deliver queues msg on the session's outbound channel without blocking the
// caller. A full queue means a slow or dead client; the message is dropped
// rather than stalling the owning game or lobby worker.
func (s *Session) deliver(msg any) {
	select {
	case s.send <- msg:
	default:
	}
}
