package main

import "sort"

// Score tracks one player's standing within a game. points and speed reset
// every round; victories, bestSpeed, and latestVictoryTimestamp accumulate
// across the whole game.
type Score struct {
	UserName               string
	Points                 int
	Speed                  float64
	BestSpeed              float64
	Victories              int
	LatestVictoryTimestamp int64
}

func newScore(userName string) *Score {
	return &Score{UserName: userName}
}

func (s *Score) resetPoints() {
	s.Points = 0
	s.Speed = 0
}

func (s *Score) view() ScoreView {
	return ScoreView{
		UserName:               s.UserName,
		Points:                 s.Points,
		Speed:                  s.Speed,
		BestSpeed:              s.BestSpeed,
		Victories:              s.Victories,
		LatestVictoryTimestamp: s.LatestVictoryTimestamp,
	}
}

// speedWordsPerMinute implements the fixed speed formula: points typed,
// scaled to a per-minute rate over the elapsed round duration.
func speedWordsPerMinute(points int, roundStartMillis, nowMillis int64) float64 {
	elapsed := nowMillis - roundStartMillis
	if elapsed <= 0 {
		return 0
	}
	return float64(points) * 60000 / float64(elapsed)
}

// sortRoundScores orders by (-points, -speed), the tie-break spec calls for.
// sort.SliceStable is used (not sort.Slice) so that scores tied on both keys
// keep their prior relative order deterministically, matching scenario 3's
// documented tie-breaker.
func sortRoundScores(scores []*Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].Speed > scores[j].Speed
	})
}

// sortGameScores orders by (-victories, -bestSpeed, +latestVictoryTimestamp).
func sortGameScores(scores []*Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Victories != scores[j].Victories {
			return scores[i].Victories > scores[j].Victories
		}
		if scores[i].BestSpeed != scores[j].BestSpeed {
			return scores[i].BestSpeed > scores[j].BestSpeed
		}
		return scores[i].LatestVictoryTimestamp < scores[j].LatestVictoryTimestamp
	})
}

func scoreViews(scores []*Score) []ScoreView {
	views := make([]ScoreView, len(scores))
	for i, s := range scores {
		views[i] = s.view()
	}
	return views
}
