package main

import (
	"strconv"
	"sync"
)

// GameDescriptor is a pending, not-yet-started game. It is owned exclusively
// by the Lobby for its entire lifetime.
type GameDescriptor struct {
	ID         uint64
	Creator    string
	Style      string
	Mode       string
	Rounds     int
	WordsCount int
	Language   string
	Difficulty string
	Players    []string
}

func (d *GameDescriptor) view() PendingGameView {
	players := make([]string, len(d.Players))
	copy(players, d.Players)
	return PendingGameView{
		ID:         d.ID,
		Creator:    d.Creator,
		Mode:       d.Mode,
		Style:      d.Style,
		Rounds:     d.Rounds,
		WordsCount: d.WordsCount,
		Language:   d.Language,
		Difficulty: d.Difficulty,
		Players:    players,
	}
}

func (d *GameDescriptor) removePlayer(name string) {
	for i, p := range d.Players {
		if p == name {
			d.Players = append(d.Players[:i], d.Players[i+1:]...)
			return
		}
	}
}

// lobbyCommand is processed one at a time by Lobby.run, the single goroutine
// that owns pendingGames and nextGameID. Same channel-actor shape as Game:
// a command type per verb, one owning goroutine serializing all mutation.
type lobbyCommand interface {
	applyLobby(l *Lobby)
}

type cmdConnect struct {
	session *Session
	name    string
}

type cmdCreateGame struct {
	session    *Session
	mode       string
	style      string
	rounds     int
	wordsCount int
	language   string
	difficulty string
}

type cmdDeleteGame struct {
	session *Session
}

type cmdJoinGame struct {
	session *Session
	id      uint64
}

type cmdLeaveGame struct {
	session *Session
}

type cmdStartGame struct {
	session *Session
}

type cmdDisconnect struct {
	session *Session
}

type cmdGameEnded struct {
	id uint64
}

// Lobby is the channel-actor owning the shared lobby state: pending game
// descriptors and the routing table from game id to running *Game. Only
// this goroutine mutates pendingGames/nextGameID; gameIndex is additionally
// guarded by a RWMutex so Router goroutines can resolve a game reference for
// in-game verbs (claim-word, start-round, quit-game) without going through
// the lobby's command channel, per the "per-game serialization, not
// per-lobby serialization" concurrency rule for those verbs.
type Lobby struct {
	cfg      *Config
	registry *Registry
	dict     DictionaryProvider
	calculus CalculusProvider
	sink     TopScoreSink

	commands chan lobbyCommand
	quit     chan struct{}

	pendingGames map[uint64]*GameDescriptor
	nextGameID   uint64

	indexMu   sync.RWMutex
	gameIndex map[uint64]*Game
}

func newLobby(cfg *Config, dict DictionaryProvider, sink TopScoreSink) *Lobby {
	return &Lobby{
		cfg:          cfg,
		registry:     newRegistry(),
		dict:         dict,
		calculus:     newCalculusProvider(),
		sink:         sink,
		commands:     make(chan lobbyCommand, 256),
		quit:         make(chan struct{}),
		pendingGames: make(map[uint64]*GameDescriptor),
		gameIndex:    make(map[uint64]*Game),
	}
}

func (l *Lobby) run() {
	for {
		select {
		case cmd := <-l.commands:
			cmd.applyLobby(l)
		case <-l.quit:
			return
		}
	}
}

func (l *Lobby) shutdown() {
	close(l.quit)
}

func (l *Lobby) send(cmd lobbyCommand) {
	select {
	case l.commands <- cmd:
	case <-l.quit:
	}
}

func (l *Lobby) lookupGame(id uint64) (*Game, bool) {
	l.indexMu.RLock()
	defer l.indexMu.RUnlock()
	g, ok := l.gameIndex[id]
	return g, ok
}

// broadcastGamesList emits the current pending-games view to every session
// in a lobby-visible state, per §4.4.
func (l *Lobby) broadcastGamesList() {
	views := make([]PendingGameView, 0, len(l.pendingGames))
	for _, d := range l.pendingGames {
		views = append(views, d.view())
	}
	msg := newGamesListMessage(views)

	targets := l.registry.byState(StateIdentified, StateCreated, StateJoined)
	broadcast(targets, msg)
}

func (c cmdConnect) applyLobby(l *Lobby) {
	s := c.session

	ok, tooLong, incorrect := validateName(c.name, l.cfg.maxNameLength)
	switch {
	case tooLong:
		s.deliver(newTooLongNameMessage(l.cfg.maxNameLength))
		return
	case incorrect:
		s.deliver(newIncorrectNameMessage())
		return
	case !ok:
		s.deliver(newIncorrectNameMessage())
		return
	}

	if l.registry.nameTaken(c.name) {
		s.deliver(newUsedNameMessage())
		return
	}

	s.setName(c.name)
	s.setState(StateIdentified)
	l.registry.add(s)

	views := make([]PendingGameView, 0, len(l.pendingGames))
	for _, d := range l.pendingGames {
		views = append(views, d.view())
	}
	s.deliver(newGamesListMessage(views))
}

func (c cmdCreateGame) applyLobby(l *Lobby) {
	s := c.session
	if s.getState() != StateIdentified {
		return
	}

	l.nextGameID++
	id := l.nextGameID

	d := &GameDescriptor{
		ID:         id,
		Creator:    s.name(),
		Mode:       c.mode,
		Style:      c.style,
		Rounds:     c.rounds,
		WordsCount: c.wordsCount,
		Language:   c.language,
		Difficulty: c.difficulty,
		Players:    []string{s.name()},
	}
	l.pendingGames[id] = d

	s.setGame(id)
	s.setState(StateCreated)

	l.broadcastGamesList()
}

func (c cmdDeleteGame) applyLobby(l *Lobby) {
	s := c.session
	if s.getState() != StateCreated {
		return
	}

	id := s.getGame()
	d, ok := l.pendingGames[id]
	if !ok || d.Creator != s.name() {
		return
	}

	delete(l.pendingGames, id)

	for _, other := range l.registry.byState(StateJoined) {
		if other.getGame() == id {
			other.setGame(0)
			other.setState(StateIdentified)
		}
	}

	s.setGame(0)
	s.setState(StateIdentified)

	l.broadcastGamesList()
}

func (c cmdJoinGame) applyLobby(l *Lobby) {
	s := c.session
	if s.getState() != StateIdentified {
		return
	}

	d, ok := l.pendingGames[c.id]
	if !ok {
		return
	}

	d.Players = append(d.Players, s.name())
	s.setGame(c.id)
	s.setState(StateJoined)

	l.broadcastGamesList()
}

func (c cmdLeaveGame) applyLobby(l *Lobby) {
	s := c.session
	if s.getState() != StateJoined {
		return
	}

	id := s.getGame()
	if d, ok := l.pendingGames[id]; ok {
		d.removePlayer(s.name())
	}

	s.setGame(0)
	s.setState(StateIdentified)

	l.broadcastGamesList()
}

func (c cmdStartGame) applyLobby(l *Lobby) {
	s := c.session
	if s.getState() != StateCreated {
		return
	}

	id := s.getGame()
	d, ok := l.pendingGames[id]
	if !ok || d.Creator != s.name() {
		return
	}

	delete(l.pendingGames, id)

	players := make([]*Session, 0, len(d.Players))
	for _, name := range d.Players {
		for _, sess := range l.registry.byState(StateCreated, StateJoined) {
			if sess.name() == name && sess.getGame() == id {
				players = append(players, sess)
			}
		}
	}

	game := newGame(l, d, players)

	l.indexMu.Lock()
	l.gameIndex[id] = game
	l.indexMu.Unlock()

	go game.run()

	for _, p := range players {
		p.setState(StateStarted)
	}

	game.send(cmdGameStartCountdown{})

	l.broadcastGamesList()
}

func (c cmdDisconnect) applyLobby(l *Lobby) {
	s := c.session
	state := s.getState()

	l.registry.remove(s.handle)

	switch state {
	case StateCreated:
		id := s.getGame()
		if d, ok := l.pendingGames[id]; ok {
			if d.Creator == s.name() {
				delete(l.pendingGames, id)
				for _, other := range l.registry.byState(StateJoined) {
					if other.getGame() == id {
						other.setGame(0)
						other.setState(StateIdentified)
					}
				}
			} else {
				d.removePlayer(s.name())
			}
			l.broadcastGamesList()
		}
	case StateJoined:
		id := s.getGame()
		if d, ok := l.pendingGames[id]; ok {
			d.removePlayer(s.name())
			l.broadcastGamesList()
		}
	default:
		// UNIDENTIFIED/IDENTIFIED: nothing further to clean up.
		// Sessions inside a running game are disconnected directly
		// through the owning Game worker (see transport.go), not here.
	}
}

func (c cmdGameEnded) applyLobby(l *Lobby) {
	l.indexMu.Lock()
	delete(l.gameIndex, c.id)
	l.indexMu.Unlock()

	l.broadcastGamesList()
}

func parseUint64(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
