package main

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		ok      bool
		verb    Verb
		argsLen int
	}{
		{name: "simple verb", frame: "leave-game", ok: true, verb: VerbLeaveGame, argsLen: 0},
		{name: "verb with args", frame: "connect alice", ok: true, verb: VerbConnect, argsLen: 1},
		{name: "multiple args", frame: "create-game Capture Regular 3 10 en Easy", ok: true, verb: VerbCreateGame, argsLen: 6},
		{name: "extra whitespace collapses", frame: "  claim-word   cat  ", ok: true, verb: VerbClaimWord, argsLen: 1},
		{name: "empty frame", frame: "", ok: false},
		{name: "whitespace only", frame: "   ", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := ParseCommand(tc.frame)
			if ok != tc.ok {
				t.Fatalf("ParseCommand(%q) ok = %v, want %v", tc.frame, ok, tc.ok)
			}
			if !ok {
				return
			}
			if cmd.Verb != tc.verb {
				t.Errorf("verb = %q, want %q", cmd.Verb, tc.verb)
			}
			if len(cmd.Args) != tc.argsLen {
				t.Errorf("len(args) = %d, want %d", len(cmd.Args), tc.argsLen)
			}
		})
	}
}

func TestSessionStateString(t *testing.T) {
	if StateRunning.String() != "RUNNING" {
		t.Errorf("StateRunning.String() = %q, want RUNNING", StateRunning.String())
	}
	if SessionState(99).String() != "UNKNOWN" {
		t.Errorf("unmapped state should stringify to UNKNOWN")
	}
}
