package main

import (
	"time"
)

// GameMode is the tagged-variant behavior the two supported modes differ
// by: how many words a round actually deals (effectiveWordsCount), how the
// round's words are dealt and shown (initRound, wordsListFor,
// broadcastClaim), and what it means for a single claim to end the round
// (claim). No inheritance, just two small implementations of the same
// interface.
type GameMode interface {
	name() string
	effectiveWordsCount(declared, playerCount int) int
	initRound(g *Game, generated []Word)
	claim(g *Game, session *Session, label string) (claimed bool, roundOver bool)
	wordsListFor(g *Game, session *Session) []WordView
	// broadcastClaim delivers the updated words list to whichever sessions a
	// successful claim affects: just the claimant in Race (private lists),
	// every player in Capture (one shared list).
	broadcastClaim(g *Game, claimant *Session)
}

type captureMode struct{}

func (captureMode) name() string { return "Capture" }

func (captureMode) effectiveWordsCount(declared, playerCount int) int {
	return declared
}

func (captureMode) initRound(g *Game, generated []Word) {
	g.sharedWords = make(map[string]*Word, len(generated))
	for i := range generated {
		w := generated[i]
		g.sharedWords[w.Label] = &w
	}
}

func (captureMode) claim(g *Game, session *Session, label string) (bool, bool) {
	w, ok := g.sharedWords[label]
	if !ok || w.ClaimedBy != "" {
		return false, false
	}

	w.ClaimedBy = session.name()

	allClaimed := true
	for _, word := range g.sharedWords {
		if word.ClaimedBy == "" {
			allClaimed = false
			break
		}
	}

	return true, allClaimed
}

func (captureMode) wordsListFor(g *Game, session *Session) []WordView {
	views := make([]WordView, 0, len(g.sharedWords))
	for _, w := range g.sharedWords {
		views = append(views, w.view())
	}
	return views
}

func (m captureMode) broadcastClaim(g *Game, claimant *Session) {
	for _, s := range g.sessions {
		s.deliver(newWordsListMessage(m.wordsListFor(g, s)))
	}
}

type raceMode struct{}

func (raceMode) name() string { return "Race" }

func (raceMode) effectiveWordsCount(declared, playerCount int) int {
	if playerCount < 1 {
		playerCount = 1
	}
	return declared * playerCount
}

func (raceMode) initRound(g *Game, generated []Word) {
	g.raceWords = make(map[string][]*Word, len(g.sessions))
	for _, s := range g.sessions {
		own := make([]*Word, len(generated))
		for i := range generated {
			w := generated[i]
			own[i] = &w
		}
		g.raceWords[s.name()] = own
	}
}

func (raceMode) claim(g *Game, session *Session, label string) (bool, bool) {
	own, ok := g.raceWords[session.name()]
	if !ok {
		return false, false
	}

	for _, w := range own {
		if w.Label == label && w.ClaimedBy == "" {
			w.ClaimedBy = session.name()

			finished := true
			for _, word := range own {
				if word.ClaimedBy == "" {
					finished = false
					break
				}
			}

			return true, finished
		}
	}

	return false, false
}

func (raceMode) wordsListFor(g *Game, session *Session) []WordView {
	own := g.raceWords[session.name()]
	views := make([]WordView, len(own))
	for i, w := range own {
		views[i] = w.view()
	}
	return views
}

func (m raceMode) broadcastClaim(g *Game, claimant *Session) {
	claimant.deliver(newWordsListMessage(m.wordsListFor(g, claimant)))
}

func gameModeFor(name string) GameMode {
	if name == "Race" {
		return raceMode{}
	}
	return captureMode{}
}

// Game is the channel-actor owning one running game's entire state for its
// lifetime: sessions, word assignments, and scores. Every mutation happens
// inside run(), so no lock is needed on the fields below: same single
// owning goroutine pattern as Lobby.run for lobby-wide state.
type Game struct {
	lobby *Lobby
	cfg   *Config

	id         uint64
	creator    string
	style      string
	mode       GameMode
	rounds     int
	declared   int
	language   string
	difficulty string

	manager  string
	sessions []*Session

	roundID             int
	roundEpoch          int64
	roundStartMillis    int64
	effectiveWordsCount int
	lastActivity        time.Time

	userScores map[string]*Score

	sharedWords map[string]*Word
	raceWords   map[string][]*Word

	commands  chan gameCommand
	quit      chan struct{}
	scheduler *Scheduler
	destroyed bool
}

func newGame(lobby *Lobby, d *GameDescriptor, sessions []*Session) *Game {
	userScores := make(map[string]*Score, len(sessions))
	for _, s := range sessions {
		userScores[s.name()] = newScore(s.name())
	}

	g := &Game{
		lobby:        lobby,
		cfg:          lobby.cfg,
		id:           d.ID,
		creator:      d.Creator,
		style:        d.Style,
		mode:         gameModeFor(d.Mode),
		rounds:       d.Rounds,
		declared:     d.WordsCount,
		language:     d.Language,
		difficulty:   d.Difficulty,
		manager:      d.Creator,
		sessions:     sessions,
		userScores:   userScores,
		commands:     make(chan gameCommand, 128),
		quit:         make(chan struct{}),
		scheduler:    newScheduler(),
		lastActivity: time.Now(),
	}
	g.scheduleIdleCheck()
	return g
}

func (g *Game) run() {
	for {
		select {
		case cmd := <-g.commands:
			cmd.applyGame(g)
		case <-g.quit:
			return
		}
	}
}

// scheduleIdleCheck arranges for cmdGameIdleCheck to fire once --round-idle-
// timeout has elapsed. It re-arms itself from the check until the game ends.
func (g *Game) scheduleIdleCheck() {
	if g.cfg.roundIdle <= 0 {
		return
	}
	g.scheduler.schedule(g.cfg.roundIdle, func() {
		g.send(cmdGameIdleCheck{})
	})
}

func (g *Game) touch() {
	g.lastActivity = time.Now()
}

func (g *Game) send(cmd gameCommand) {
	select {
	case g.commands <- cmd:
	case <-g.quit:
	}
}

func (g *Game) destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	close(g.quit)
	g.lobby.send(cmdGameEnded{id: g.id})
}

func (g *Game) findSession(name string) (*Session, int) {
	for i, s := range g.sessions {
		if s.name() == name {
			return s, i
		}
	}
	return nil, -1
}

func (g *Game) removeSession(i int) {
	g.sessions = append(g.sessions[:i], g.sessions[i+1:]...)
}

// roundExpiration is the style-dependent, declared-count-scaled duration a
// round runs before claimRemainingWords fires unconditionally.
func roundExpiration(style string, declared int) time.Duration {
	perWord := 3 * time.Second
	switch style {
	case "Hidden":
		perWord = 4 * time.Second
	case "Calculus":
		perWord = 5 * time.Second
	}
	if declared < 1 {
		declared = 1
	}
	return time.Duration(declared) * perWord
}

// gameCommand is processed one at a time by Game.run, serializing
// claim-word, disconnect, start-round, and timer callbacks over the game's
// state, per the concurrency model.
type gameCommand interface {
	applyGame(g *Game)
}

type cmdGameStartCountdown struct{}

type cmdGameStartPlay struct {
	epoch int64
}

type cmdGameClaimWord struct {
	session *Session
	label   string
}

type cmdGameClaimRemaining struct {
	epoch int64
}

type cmdGameStartRound struct {
	session *Session
}

type cmdGameQuit struct {
	session *Session
}

type cmdGameDisconnect struct {
	session *Session
}

type cmdGameIdleCheck struct{}

func (c cmdGameIdleCheck) applyGame(g *Game) {
	if g.cfg.roundIdle <= 0 {
		return
	}
	if time.Since(g.lastActivity) >= g.cfg.roundIdle {
		logf(g.cfg, "GAME %d: force-ending, idle for %s", g.id, g.cfg.roundIdle)
		g.roundEpoch++
		g.destroy()
		return
	}
	g.scheduleIdleCheck()
}

func (cmdGameStartCountdown) applyGame(g *Game) {
	g.startCountdown()
}

func (g *Game) startCountdown() {
	g.touch()
	g.roundID++
	for _, score := range g.userScores {
		score.resetPoints()
	}

	playerCount := len(g.sessions)
	g.effectiveWordsCount = g.mode.effectiveWordsCount(g.declared, playerCount)

	broadcast(g.sessions, newGameStartMessage(g.id, g.roundID, g.manager, int(g.cfg.countdown/time.Second)))

	for _, s := range g.sessions {
		s.setState(StateStarted)
	}

	g.roundEpoch++
	epoch := g.roundEpoch

	countdown := g.cfg.countdown
	if countdown <= 0 {
		countdown = 5 * time.Second
	}

	g.scheduler.schedule(countdown, func() {
		g.send(cmdGameStartPlay{epoch: epoch})
	})
}

func (c cmdGameStartPlay) applyGame(g *Game) {
	if c.epoch != g.roundEpoch {
		return
	}
	g.startPlay()
}

func (g *Game) startPlay() {
	var generated []Word
	var err error

	if g.style == "Calculus" {
		generated, err = g.lobby.calculus.Generate(g.effectiveWordsCount, g.difficulty)
	} else {
		generated, err = g.lobby.dict.Generate(g.language, g.effectiveWordsCount, g.style, g.difficulty)
	}

	if err != nil || len(generated) == 0 {
		logf(g.cfg, "GAME %d: dictionary collaborator failed: %v", g.id, err)
		generated = []Word{}
	}

	if len(generated) < g.effectiveWordsCount {
		g.effectiveWordsCount = len(generated)
	}

	g.mode.initRound(g, generated)
	g.roundStartMillis = time.Now().UnixMilli()

	for _, s := range g.sessions {
		s.setState(StateRunning)
		s.deliver(newWordsListMessage(g.mode.wordsListFor(g, s)))
	}

	epoch := g.roundEpoch
	expiration := roundExpiration(g.style, g.declared)

	g.scheduler.schedule(expiration, func() {
		g.send(cmdGameClaimRemaining{epoch: epoch})
	})
}

func (c cmdGameClaimWord) applyGame(g *Game) {
	if c.session.getState() != StateRunning {
		return
	}

	claimed, roundOver := g.mode.claim(g, c.session, c.label)
	if !claimed {
		return
	}

	g.touch()
	g.userScores[c.session.name()].Points++

	g.mode.broadcastClaim(g, c.session)

	if roundOver {
		g.endRound()
	}
}

func (c cmdGameClaimRemaining) applyGame(g *Game) {
	if c.epoch != g.roundEpoch {
		return
	}
	g.endRound()
}

func (g *Game) endRound() {
	g.touch()
	g.roundEpoch++

	now := time.Now().UnixMilli()

	// Built in session order, not map order, so that scores tied on every
	// sort key keep a deterministic order.
	roundScores := make([]*Score, 0, len(g.userScores))
	for _, s := range g.sessions {
		score, ok := g.userScores[s.name()]
		if !ok {
			continue
		}
		score.Speed = speedWordsPerMinute(score.Points, g.roundStartMillis, now)
		if score.Speed > score.BestSpeed {
			score.BestSpeed = score.Speed
		}
		roundScores = append(roundScores, score)
	}

	sortRoundScores(roundScores)

	if len(roundScores) > 0 {
		roundScores[0].Victories++
		roundScores[0].LatestVictoryTimestamp = now
	}

	gameScores := make([]*Score, len(roundScores))
	copy(gameScores, roundScores)
	sortGameScores(gameScores)

	gameOver := len(gameScores) > 0 && gameScores[0].Victories >= g.rounds

	var words []WordView
	if g.sharedWords != nil {
		for _, w := range g.sharedWords {
			words = append(words, w.view())
		}
	}

	msg := newScoresMessage(
		scoreViews(roundScores),
		scoreViews(gameScores),
		g.manager,
		now-g.roundStartMillis,
		gameOver,
		words,
	)

	for _, s := range g.sessions {
		s.setState(StateEndRound)
		s.deliver(msg)
	}

	if g.lobby.sink != nil {
		if err := g.lobby.sink.Record(g.style, g.language, g.difficulty, roundScores, g.effectiveWordsCount); err != nil {
			logf(g.cfg, "GAME %d: top-score sink failed: %v", g.id, err)
		}
	}
}

func (c cmdGameStartRound) applyGame(g *Game) {
	if c.session.getState() != StateEndRound && c.session.getState() != StateScores {
		return
	}
	if c.session.name() != g.manager {
		return
	}

	g.startCountdown()
}

func (c cmdGameQuit) applyGame(g *Game) {
	g.disconnectSession(c.session)
	c.session.setState(StateIdentified)
	c.session.setGame(0)
}

func (c cmdGameDisconnect) applyGame(g *Game) {
	g.disconnectSession(c.session)
}

// disconnectSession removes a player from the running game and, if
// necessary, re-elects the manager or destroys the game, per §4.6. All of
// this runs inside the game's own worker so it cannot race with an
// in-flight claim or timer callback.
func (g *Game) disconnectSession(s *Session) {
	_, idx := g.findSession(s.name())
	if idx < 0 {
		return
	}
	g.touch()
	g.removeSession(idx)
	delete(g.userScores, s.name())

	if len(g.sessions) == 0 {
		g.roundEpoch++
		g.destroy()
		return
	}

	if g.manager == s.name() {
		g.manager = g.sessions[0].name()
		broadcast(g.sessions, newManagerMessage(g.manager))
	}
}
