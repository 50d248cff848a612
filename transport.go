package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
)

// serveWS upgrades the connection and wires it to the lobby: one goroutine
// pair per connection (readPump/writePump), a session registered on
// connect and torn down on close.
func serveWS(cfg *Config, lobby *Lobby, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			errs <- err
			return
		}

		handle := uuid.NewString()
		session := newSession(handle, conn)

		logf(cfg, "CONNECT: %s from %s", handle, realIP(r))

		go writePump(cfg, session)
		readPump(cfg, lobby, session)
	}
}

func readPump(cfg *Config, lobby *Lobby, session *Session) {
	defer func() {
		lobby.send(cmdDisconnect{session: session})
		if id := session.getGame(); id != 0 {
			if game, ok := lobby.lookupGame(id); ok {
				game.send(cmdGameDisconnect{session: session})
			}
		}
		session.conn.Close()
		close(session.send)
		logf(cfg, "DISCONNECT: %s", session.handle)
	}()

	session.conn.SetReadLimit(4096)
	session.conn.SetReadDeadline(time.Now().Add(pongWait))
	session.conn.SetPongHandler(func(string) error {
		session.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			return
		}

		cmd, ok := ParseCommand(string(data))
		if !ok {
			continue
		}

		dispatch(lobby, session, cmd)
	}
}

func writePump(cfg *Config, session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-session.send:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				session.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := session.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch is the (state, verb) -> handler table of §6.3: verbs illegal in
// the session's current state, or with malformed args, are silently
// ignored, per the protocol-violation error kind.
func dispatch(lobby *Lobby, s *Session, cmd Command) {
	state := s.getState()

	switch cmd.Verb {
	case VerbConnect:
		if state != StateUnidentified || len(cmd.Args) < 1 {
			return
		}
		lobby.send(cmdConnect{session: s, name: cmd.Args[0]})

	case VerbCreateGame:
		if state != StateIdentified || len(cmd.Args) < 6 {
			return
		}
		rounds, err := strconv.Atoi(cmd.Args[2])
		if err != nil {
			return
		}
		wordsCount, err := strconv.Atoi(cmd.Args[3])
		if err != nil {
			return
		}
		lobby.send(cmdCreateGame{
			session:    s,
			mode:       cmd.Args[0],
			style:      cmd.Args[1],
			rounds:     rounds,
			wordsCount: wordsCount,
			language:   cmd.Args[4],
			difficulty: cmd.Args[5],
		})

	case VerbDeleteGame:
		if state != StateCreated {
			return
		}
		lobby.send(cmdDeleteGame{session: s})

	case VerbJoinGame:
		if state != StateIdentified || len(cmd.Args) < 1 {
			return
		}
		id, ok := parseUint64(cmd.Args[0])
		if !ok {
			return
		}
		lobby.send(cmdJoinGame{session: s, id: id})

	case VerbLeaveGame:
		if state != StateJoined {
			return
		}
		lobby.send(cmdLeaveGame{session: s})

	case VerbStartGame:
		if state != StateCreated {
			return
		}
		lobby.send(cmdStartGame{session: s})

	case VerbStartRound:
		if state != StateEndRound && state != StateScores {
			return
		}
		if game, ok := lobby.lookupGame(s.getGame()); ok {
			game.send(cmdGameStartRound{session: s})
		}

	case VerbClaimWord:
		if state != StateRunning || len(cmd.Args) < 1 {
			return
		}
		if game, ok := lobby.lookupGame(s.getGame()); ok {
			game.send(cmdGameClaimWord{session: s, label: cmd.Args[0]})
		}

	case VerbQuitGame:
		if state != StateEndRound && state != StateScores && state != StateRunning {
			return
		}
		if game, ok := lobby.lookupGame(s.getGame()); ok {
			game.send(cmdGameQuit{session: s})
		}

	default:
		// Unknown verb: silently ignored.
	}
}
