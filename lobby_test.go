package main

import "testing"

func newTestLobby() *Lobby {
	cfg := &Config{maxNameLength: 16}
	dict, _ := newDictionary("")
	return &Lobby{
		cfg:          cfg,
		registry:     newRegistry(),
		dict:         dict,
		calculus:     newCalculusProvider(),
		pendingGames: make(map[uint64]*GameDescriptor),
		gameIndex:    make(map[uint64]*Game),
	}
}

func TestConnectAcceptsUniqueName(t *testing.T) {
	l := newTestLobby()
	s := newSession("1", nil)
	s.send = make(chan any, 4)

	cmdConnect{session: s, name: "alice"}.applyLobby(l)

	if s.getState() != StateIdentified {
		t.Fatalf("state = %v, want IDENTIFIED", s.getState())
	}
	if s.name() != "alice" {
		t.Fatalf("name = %q, want alice", s.name())
	}
}

func TestConnectRejectsUsedName(t *testing.T) {
	l := newTestLobby()

	first := newSession("1", nil)
	first.send = make(chan any, 4)
	cmdConnect{session: first, name: "alice"}.applyLobby(l)

	second := newSession("2", nil)
	second.send = make(chan any, 4)
	cmdConnect{session: second, name: "alice"}.applyLobby(l)

	if second.getState() != StateUnidentified {
		t.Fatalf("second session state = %v, want UNIDENTIFIED after used-name rejection", second.getState())
	}

	select {
	case msg := <-second.send:
		if _, ok := msg.(UsedNameMessage); !ok {
			t.Fatalf("expected UsedNameMessage, got %T", msg)
		}
	default:
		t.Fatal("expected a used-name message to be delivered")
	}
}

func TestCreateAndJoinGame(t *testing.T) {
	l := newTestLobby()

	creator := newSession("1", nil)
	creator.send = make(chan any, 8)
	cmdConnect{session: creator, name: "alice"}.applyLobby(l)

	cmdCreateGame{
		session: creator, mode: "Capture", style: "Regular",
		rounds: 1, wordsCount: 5, language: "en", difficulty: "Easy",
	}.applyLobby(l)

	if creator.getState() != StateCreated {
		t.Fatalf("creator state = %v, want CREATED", creator.getState())
	}

	gameID := creator.getGame()
	if gameID == 0 {
		t.Fatal("expected a nonzero game id after create-game")
	}

	joiner := newSession("2", nil)
	joiner.send = make(chan any, 8)
	cmdConnect{session: joiner, name: "bob"}.applyLobby(l)
	cmdJoinGame{session: joiner, id: gameID}.applyLobby(l)

	if joiner.getState() != StateJoined {
		t.Fatalf("joiner state = %v, want JOINED", joiner.getState())
	}

	d := l.pendingGames[gameID]
	if len(d.Players) != 2 {
		t.Fatalf("len(players) = %d, want 2", len(d.Players))
	}
}

func TestDeleteGameOnlyByCreator(t *testing.T) {
	l := newTestLobby()

	creator := newSession("1", nil)
	creator.send = make(chan any, 8)
	cmdConnect{session: creator, name: "alice"}.applyLobby(l)
	cmdCreateGame{session: creator, mode: "Capture", style: "Regular", rounds: 1, wordsCount: 5, language: "en", difficulty: "Easy"}.applyLobby(l)

	gameID := creator.getGame()

	joiner := newSession("2", nil)
	joiner.send = make(chan any, 8)
	cmdConnect{session: joiner, name: "bob"}.applyLobby(l)
	cmdJoinGame{session: joiner, id: gameID}.applyLobby(l)
	cmdDeleteGame{session: joiner}.applyLobby(l)

	if _, ok := l.pendingGames[gameID]; !ok {
		t.Fatal("expected descriptor to survive delete-game from a non-creator")
	}

	cmdDeleteGame{session: creator}.applyLobby(l)

	if _, ok := l.pendingGames[gameID]; ok {
		t.Fatal("expected descriptor to be removed after delete-game")
	}
	if creator.getState() != StateIdentified {
		t.Fatalf("creator state = %v, want IDENTIFIED", creator.getState())
	}
}
