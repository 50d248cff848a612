package main

import "testing"

func TestSortRoundScores(t *testing.T) {
	scores := []*Score{
		{UserName: "a", Points: 2, Speed: 10},
		{UserName: "b", Points: 4, Speed: 5},
		{UserName: "c", Points: 4, Speed: 20},
	}

	sortRoundScores(scores)

	want := []string{"c", "b", "a"}
	for i, name := range want {
		if scores[i].UserName != name {
			t.Errorf("position %d = %s, want %s", i, scores[i].UserName, name)
		}
	}
}

func TestSortGameScores(t *testing.T) {
	scores := []*Score{
		{UserName: "a", Victories: 1, BestSpeed: 50, LatestVictoryTimestamp: 100},
		{UserName: "b", Victories: 2, BestSpeed: 10, LatestVictoryTimestamp: 200},
		{UserName: "c", Victories: 2, BestSpeed: 10, LatestVictoryTimestamp: 50},
	}

	sortGameScores(scores)

	want := []string{"c", "b", "a"}
	for i, name := range want {
		if scores[i].UserName != name {
			t.Errorf("position %d = %s, want %s", i, scores[i].UserName, name)
		}
	}
}

func TestSpeedWordsPerMinute(t *testing.T) {
	speed := speedWordsPerMinute(5, 0, 30000)
	if speed != 10 {
		t.Errorf("speed = %v, want 10", speed)
	}

	if got := speedWordsPerMinute(5, 100, 100); got != 0 {
		t.Errorf("zero elapsed time should yield 0 speed, got %v", got)
	}
}

func TestResetPoints(t *testing.T) {
	s := newScore("alice")
	s.Points = 3
	s.Speed = 42
	s.Victories = 2

	s.resetPoints()

	if s.Points != 0 || s.Speed != 0 {
		t.Errorf("resetPoints should zero points and speed, got points=%d speed=%v", s.Points, s.Speed)
	}
	if s.Victories != 2 {
		t.Errorf("resetPoints must not touch victories, got %d", s.Victories)
	}
}
