package main

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLen    int
		wantOK    bool
		wantLong  bool
		wantWrong bool
	}{
		{name: "valid", input: "alice", maxLen: 16, wantOK: true},
		{name: "too long", input: "aaaaaaaaaaaaaaaaaaaa", maxLen: 16, wantLong: true},
		{name: "empty", input: "", maxLen: 16, wantWrong: true},
		{name: "contains space", input: "al ice", maxLen: 16, wantWrong: true},
		{name: "exactly max length", input: "1234567890123456", maxLen: 16, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, tooLong, incorrect := validateName(tc.input, tc.maxLen)
			if ok != tc.wantOK || tooLong != tc.wantLong || incorrect != tc.wantWrong {
				t.Errorf("validateName(%q, %d) = (%v,%v,%v), want (%v,%v,%v)",
					tc.input, tc.maxLen, ok, tooLong, incorrect, tc.wantOK, tc.wantLong, tc.wantWrong)
			}
		})
	}
}

func TestRegistryNameUniqueness(t *testing.T) {
	r := newRegistry()

	a := newSession("a", nil)
	a.setName("alice")
	a.setState(StateIdentified)
	r.add(a)

	if !r.nameTaken("alice") {
		t.Fatal("expected alice to be taken")
	}
	if r.nameTaken("bob") {
		t.Fatal("expected bob to be free")
	}

	r.remove("a")
	if r.nameTaken("alice") {
		t.Fatal("expected alice to be free after removal")
	}
}

func TestRegistryByState(t *testing.T) {
	r := newRegistry()

	idle := newSession("1", nil)
	idle.setState(StateIdentified)
	r.add(idle)

	running := newSession("2", nil)
	running.setState(StateRunning)
	r.add(running)

	got := r.byState(StateIdentified, StateCreated, StateJoined)
	if len(got) != 1 || got[0] != idle {
		t.Fatalf("byState returned %v, want only the IDENTIFIED session", got)
	}
}
