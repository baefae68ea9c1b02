package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/logging"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/valyala/fastrand"
	"go.uber.org/zap"
)

// SubscriberFn receives every public view in emission order. It is called
// with the session lock held: it must not block and must not call back into
// the session.
type SubscriberFn func(View)

type subscriber struct {
	id uint64
	fn SubscriberFn
}

func NewSession(ctx context.Context, config Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config = config.withDefaults()
	id := uuid.New().String()

	return &Session{
		ID:        id,
		CreatedAt: config.Clock.Now(),
		config:    config,
		clock:     config.Clock,
		logger:    logging.FromContext(ctx).Named("quiz.Session").With("session", id),
		tokens:    map[string]*Player{},
		state: lobbyState{
			rounds:                 config.Rounds,
			timeForQuestionSeconds: config.TimeForQuestionSeconds,
		},
	}, nil
}

// Session is one quiz game: its roster, its current phase and the single
// pending transition timer. All mutations and timer callbacks are
// serialized by mtx.
type Session struct {
	ID        string
	CreatedAt time.Time

	config Config
	clock  clockwork.Clock
	logger *zap.SugaredLogger

	mtx     sync.Mutex
	players []*Player
	tokens  map[string]*Player
	state   state

	timer    clockwork.Timer
	timerSeq uint64

	prevQuestionID string

	subscribers []subscriber
	subSeq      uint64

	destroyed bool
}

// PublicState returns the current projection. It is valid in every phase.
func (s *Session) PublicState() View {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.view()
}

// AddPlayer registers the player and broadcasts the new roster. Joining is
// allowed in every phase; a player joining mid-round has not answered.
func (s *Session) AddPlayer(player Player) error {
	if err := player.Validate(); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return fmt.Errorf("add player: %w", ErrState)
	}

	if len(s.players) >= s.config.MaxPlayers {
		return fmt.Errorf("add player: %w: at most %d players", ErrCapacity, s.config.MaxPlayers)
	}

	if _, ok := s.tokens[player.Token]; ok {
		return fmt.Errorf("%w: duplicate token", ErrValidation)
	}

	if _, ok := s.findPlayer(player.ID); ok {
		return fmt.Errorf("%w: duplicate player id %s", ErrValidation, player.ID)
	}

	p := player
	s.players = append(s.players, &p)
	s.tokens[p.Token] = &p
	s.logger.Debugf("Player %s joined as %q", p.ID, p.Name)
	s.broadcast()

	return nil
}

// RemovePlayer drops the player with the given id. It reports whether a
// player was removed; nothing is broadcast otherwise.
func (s *Session) RemovePlayer(id string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return false
	}

	idx, ok := s.findPlayer(id)
	if !ok {
		return false
	}

	s.removeAt(idx)
	return true
}

// LeavePlayer is RemovePlayer addressed by token.
func (s *Session) LeavePlayer(token string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return false
	}

	p, ok := s.tokens[token]
	if !ok {
		return false
	}

	idx, _ := s.findPlayer(p.ID)
	s.removeAt(idx)
	return true
}

// StartGame moves a lobby with at least one player into round 1. An empty
// question store is not an error: the session falls back to the lobby.
func (s *Session) StartGame() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return fmt.Errorf("start game: %w", ErrState)
	}

	if _, ok := s.state.(lobbyState); !ok {
		return fmt.Errorf("start game: %w: game is %s", ErrState, s.state.phase())
	}

	if len(s.players) == 0 {
		return fmt.Errorf("start game: %w: no players", ErrState)
	}

	for _, p := range s.players {
		p.Score = 0
	}
	s.prevQuestionID = ""

	s.logger.Infof("The game started, players: %d, rounds: %d", len(s.players), s.config.Rounds)
	s.startRound(1)

	return nil
}

// PostAnswer records the selection of the player owning token. A repeated
// answer replaces the previous one. Once every present player has answered
// the round resolves immediately.
func (s *Session) PostAnswer(token, optionID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return fmt.Errorf("post answer: %w", ErrState)
	}

	st, ok := s.state.(*waitingState)
	if !ok {
		return fmt.Errorf("post answer: %w: game is %s", ErrState, s.state.phase())
	}

	p, ok := s.tokens[token]
	if !ok {
		return fmt.Errorf("post answer: %w", ErrAuth)
	}

	if _, ok := st.option(optionID); !ok {
		return fmt.Errorf("post answer: option %s: %w", optionID, ErrNotFound)
	}

	st.answers[p.ID] = optionID

	if s.allAnswered(st) {
		s.resolveRound()
		return nil
	}

	s.broadcast()
	return nil
}

// Subscribe registers fn and returns the view current at registration
// time, so that no update can fall between the snapshot and the first
// notification. The returned function detaches fn and is safe to call
// more than once.
func (s *Session) Subscribe(fn SubscriberFn) (View, func(), error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return nil, nil, fmt.Errorf("subscribe: %w", ErrState)
	}

	s.subSeq++
	id := s.subSeq
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	unsubscribe := func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}

	return s.view(), unsubscribe, nil
}

// NotifyDestroy cancels the pending timer, sends the terminal view to every
// subscriber and detaches them. Further calls are no-ops.
func (s *Session) NotifyDestroy() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return
	}

	s.cancelTimer()
	s.destroyed = true

	view := s.view()
	for _, sub := range s.subscribers {
		sub.fn(view)
	}
	s.subscribers = nil
	s.logger.Info("The game session destroyed")
}

func (s *Session) view() View {
	if s.destroyed {
		return DestroyedView{ID: s.ID, State: PhaseDestroyed}
	}

	players := make([]Player, len(s.players))
	for i, p := range s.players {
		players[i] = *p
	}

	return project(s.ID, players, s.state)
}

func (s *Session) broadcast() {
	if len(s.subscribers) == 0 {
		return
	}

	view := s.view()
	for _, sub := range s.subscribers {
		sub.fn(view)
	}
}

func (s *Session) findPlayer(id string) (int, bool) {
	for i, p := range s.players {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Session) removeAt(idx int) {
	p := s.players[idx]
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	delete(s.tokens, p.Token)
	s.logger.Debugf("Player %s left", p.ID)

	if st, ok := s.state.(*waitingState); ok {
		delete(st.answers, p.ID)
		if len(s.players) > 0 && s.allAnswered(st) {
			s.resolveRound()
			return
		}
	}

	s.broadcast()
}

func (s *Session) allAnswered(st *waitingState) bool {
	for _, p := range s.players {
		if _, ok := st.answers[p.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) startRound(round int) {
	q, ok := s.pickQuestion()
	if !ok {
		s.toLobby()
		return
	}

	now := s.clock.Now()
	timeout := time.Duration(s.config.TimeForQuestionSeconds) * time.Second
	st := &waitingState{
		question:      roundQuestion{id: q.ID, text: q.Text},
		options:       make([]roundOption, len(q.Options)),
		answers:       map[string]string{},
		currentRound:  round,
		rounds:        s.config.Rounds,
		startedAtUnix: now.UnixMilli(),
		deadlineUnix:  now.Add(timeout).UnixMilli(),
	}
	for i, o := range q.Options {
		st.options[i] = roundOption{id: o.ID, text: o.Text, correct: o.Correct}
	}

	s.prevQuestionID = q.ID
	s.state = st
	s.schedule(timeout, PhaseWaitingForAnswers, s.resolveRound)
	s.logger.Debugf("Round %d/%d started, question: %s", round, st.rounds, q.ID)
	s.broadcast()
}

func (s *Session) resolveRound() {
	st, ok := s.state.(*waitingState)
	if !ok {
		return
	}

	correctID, _ := st.correctID()
	for _, p := range s.players {
		if answer, ok := st.answers[p.ID]; ok && answer == correctID {
			p.Score++
		}
	}

	post := &postAnswerState{
		question:     st.question,
		options:      make([]resolvedOption, len(st.options)),
		currentRound: st.currentRound,
		rounds:       st.rounds,
	}
	for i, o := range st.options {
		selected := []string{}
		for _, p := range s.players {
			if st.answers[p.ID] == o.id {
				selected = append(selected, p.ID)
			}
		}
		post.options[i] = resolvedOption{roundOption: o, selectedBy: selected}
	}

	s.state = post
	s.schedule(s.config.Intermission, PhasePostAnswer, s.advance)
	s.logger.Debugf("Round %d/%d resolved", post.currentRound, post.rounds)
	s.broadcast()
}

func (s *Session) advance() {
	st, ok := s.state.(*postAnswerState)
	if !ok {
		return
	}

	// Exactly rounds rounds are played, so the last one is rounds itself.
	if st.currentRound >= st.rounds {
		s.logger.Infof("The game finished after %d rounds", st.rounds)
		s.toLobby()
		return
	}

	s.startRound(st.currentRound + 1)
}

func (s *Session) toLobby() {
	s.cancelTimer()
	s.state = lobbyState{
		rounds:                 s.config.Rounds,
		timeForQuestionSeconds: s.config.TimeForQuestionSeconds,
	}
	s.broadcast()
}

// pickQuestion draws uniformly among the stored questions other than the
// previous one, repeating the previous one only when it is all there is.
func (s *Session) pickQuestion() (model.Question, bool) {
	all, err := s.config.Questions.FetchAll()
	if err != nil {
		s.logger.Errorf("Fetch questions: %v", err)
		return model.Question{}, false
	}

	if len(all) == 0 {
		s.logger.Warn("No questions to serve, back to lobby")
		return model.Question{}, false
	}

	candidates := make([]model.Question, 0, len(all))
	for _, q := range all {
		if q.ID != s.prevQuestionID {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		candidates = all
	}

	return candidates[fastrand.Uint32n(uint32(len(candidates)))], true
}

// schedule replaces the pending timer. The callback is dropped if another
// transition happened in between or the session is no longer in expected.
func (s *Session) schedule(d time.Duration, expected Phase, fn func()) {
	s.cancelTimer()
	seq := s.timerSeq

	s.timer = s.clock.AfterFunc(d, func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()

		if s.destroyed || s.timerSeq != seq || s.state.phase() != expected {
			s.logger.Debugf("Stale %s timer ignored", expected)
			return
		}

		s.timer = nil
		fn()
	})
}

func (s *Session) cancelTimer() {
	s.timerSeq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
