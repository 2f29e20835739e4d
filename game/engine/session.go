package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// GameOverHandler is notified synchronously when every card of a game is matched
type GameOverHandler func(session *GameSession)

// HandlerID identifies a registered game-over handler
type HandlerID uint64

type gameOverSubscription struct {
	id      HandlerID
	handler GameOverHandler
}

// GameSession drives a single game: board, players, turns and completion
type GameSession struct {
	board   *Board
	players []*Player
	current int
	status  Status
	history []MatchRecord
	rng     *rand.Rand

	handlers      []gameOverSubscription
	nextHandlerID HandlerID
}

// Option configures a GameSession
type Option func(*GameSession)

// WithRand sets the random source used to lay out boards
func WithRand(rng *rand.Rand) Option {
	return func(s *GameSession) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed lays out boards from a deterministic source seeded with seed
func WithSeed(seed int64) Option {
	return func(s *GameSession) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewGameSession creates a session that has not been started yet
func NewGameSession(opts ...Option) *GameSession {
	s := &GameSession{status: StatusNotStarted}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start begins a new game with playerCount generated players, discarding any
// game in progress.
func (s *GameSession) Start(columns, rows, cardTypeCount, playerCount int) error {
	if playerCount <= 0 {
		return fmt.Errorf("%w: there must be at least 1 player, got %d", ErrInvalidArgument, playerCount)
	}
	return s.start(func(b *Board) error {
		return b.Create(columns, rows, cardTypeCount)
	}, generatePlayers(playerCount))
}

// StartWithPlayers begins a new game with the given players in turn order.
// Their scores are reset to zero.
func (s *GameSession) StartWithPlayers(columns, rows, cardTypeCount int, players []*Player) error {
	if err := validatePlayers(players); err != nil {
		return err
	}
	return s.start(func(b *Board) error {
		return b.Create(columns, rows, cardTypeCount)
	}, players)
}

// StartWithConfig begins a new game laid out by cfg with playerCount generated players
func (s *GameSession) StartWithConfig(cfg BoardConfig, playerCount int) error {
	return s.Start(cfg.Columns, cfg.Rows, cfg.CardTypeCount, playerCount)
}

// StartWithConfigAndPlayers begins a new game laid out by cfg with the given players
func (s *GameSession) StartWithConfigAndPlayers(cfg BoardConfig, players []*Player) error {
	return s.StartWithPlayers(cfg.Columns, cfg.Rows, cfg.CardTypeCount, players)
}

// StartWithBoard begins a new game on a prebuilt row-major grid
func (s *GameSession) StartWithBoard(grid [][]Card, players []*Player) error {
	if err := validatePlayers(players); err != nil {
		return err
	}
	return s.start(func(b *Board) error {
		return b.Load(grid)
	}, players)
}

// start commits a new game only once the board has been built successfully
func (s *GameSession) start(build func(*Board) error, players []*Player) error {
	board := NewBoard(s.rng)
	if err := build(board); err != nil {
		return err
	}

	ordered := make([]*Player, len(players))
	copy(ordered, players)
	for _, p := range ordered {
		p.score = 0
	}

	s.board = board
	s.players = ordered
	s.current = 0
	s.history = nil
	s.status = StatusRunning
	return nil
}

func validatePlayers(players []*Player) error {
	if len(players) == 0 {
		return fmt.Errorf("%w: there must be at least 1 player", ErrInvalidArgument)
	}
	seen := make(map[*Player]int, len(players))
	for i, p := range players {
		if p == nil {
			return fmt.Errorf("%w: player %d is nil", ErrInvalidArgument, i)
		}
		if j, ok := seen[p]; ok {
			return fmt.Errorf("%w: player %d is the same player as player %d", ErrInvalidArgument, i, j)
		}
		seen[p] = i
	}
	return nil
}

// AttemptMatch tries to pair the cards at (x1, y1) and (x2, y2) for the
// current player. On a match the player scores and keeps the turn; otherwise
// the turn passes to the next player. A failed attempt changes nothing.
func (s *GameSession) AttemptMatch(x1, y1, x2, y2 int) (MatchResult, error) {
	if x1 == x2 && y1 == y2 {
		return NoMatch, fmt.Errorf("%w: cannot match card (%d, %d) with itself", ErrInvalidOperation, x1, y1)
	}

	switch s.status {
	case StatusNotStarted:
		return NoMatch, fmt.Errorf("%w: start the game first", ErrNotRunning)
	case StatusEnded:
		return NoMatch, fmt.Errorf("%w: start a new game", ErrGameEnded)
	}

	first, err := s.board.Get(x1, y1)
	if err != nil {
		return NoMatch, err
	}
	second, err := s.board.Get(x2, y2)
	if err != nil {
		return NoMatch, err
	}

	if first.IsMatched() {
		return NoMatch, fmt.Errorf("%w: first card (%d, %d)", ErrAlreadyMatched, x1, y1)
	}
	if second.IsMatched() {
		return NoMatch, fmt.Errorf("%w: second card (%d, %d)", ErrAlreadyMatched, x2, y2)
	}

	record := MatchRecord{
		Attempt:     len(s.history) + 1,
		PlayerIndex: s.current,
		First:       Position{X: x1, Y: y1},
		Second:      Position{X: x2, Y: y2},
		FirstType:   first.TypeID(),
		SecondType:  second.TypeID(),
		Result:      NoMatch,
	}

	if !first.Matches(second) {
		s.history = append(s.history, record)
		s.moveToNextPlayer()
		return NoMatch, nil
	}

	// Both positions were bounds-checked above.
	_ = s.board.SetMatched(x1, y1, true)
	_ = s.board.SetMatched(x2, y2, true)
	s.players[s.current].score++

	record.Result = Match
	s.history = append(s.history, record)

	s.checkForGameOver()
	return Match, nil
}

// AttemptMatchAt is AttemptMatch for two positions
func (s *GameSession) AttemptMatchAt(first, second Position) (MatchResult, error) {
	return s.AttemptMatch(first.X, first.Y, second.X, second.Y)
}

// checkForGameOver ends the game once every card is matched. The status is
// committed before any handler runs.
func (s *GameSession) checkForGameOver() {
	for _, row := range s.board.Snapshot() {
		for _, card := range row {
			if !card.IsMatched() {
				return
			}
		}
	}

	s.status = StatusEnded

	handlers := make([]gameOverSubscription, len(s.handlers))
	copy(handlers, s.handlers)
	for _, sub := range handlers {
		sub.handler(s)
	}
}

func (s *GameSession) moveToNextPlayer() {
	s.current = (s.current + 1) % len(s.players)
}

// AddGameOverHandler registers h to be called each time a game completes
func (s *GameSession) AddGameOverHandler(h GameOverHandler) HandlerID {
	s.nextHandlerID++
	s.handlers = append(s.handlers, gameOverSubscription{id: s.nextHandlerID, handler: h})
	return s.nextHandlerID
}

// RemoveGameOverHandler unregisters a handler. It reports whether id was registered.
func (s *GameSession) RemoveGameOverHandler(id HandlerID) bool {
	for i, sub := range s.handlers {
		if sub.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Status returns the lifecycle state of the session
func (s *GameSession) Status() Status {
	return s.status
}

// IsGameOver reports whether every card of the current game is matched
func (s *GameSession) IsGameOver() bool {
	return s.status == StatusEnded
}

func (s *GameSession) requireStarted() error {
	if s.status == StatusNotStarted {
		return fmt.Errorf("%w: start the game with some players first", ErrNotRunning)
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is
func (s *GameSession) CurrentPlayer() (*Player, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	return s.players[s.current], nil
}

// CurrentPlayerIndex returns the turn-order index of the current player
func (s *GameSession) CurrentPlayerIndex() (int, error) {
	if err := s.requireStarted(); err != nil {
		return 0, err
	}
	return s.current, nil
}

// Players returns the players in turn order
func (s *GameSession) Players() ([]*Player, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	players := make([]*Player, len(s.players))
	copy(players, s.players)
	return players, nil
}

// Dimensions returns the column and row counts of the board
func (s *GameSession) Dimensions() (columns, rows int, err error) {
	if err := s.requireStarted(); err != nil {
		return 0, 0, err
	}
	columns, rows = s.board.Dimensions()
	return columns, rows, nil
}

// Card returns a copy of the card at x,y
func (s *GameSession) Card(x, y int) (Card, error) {
	if err := s.requireStarted(); err != nil {
		return Card{}, err
	}
	return s.board.Get(x, y)
}

// Snapshot returns an independent row-major copy of the board
func (s *GameSession) Snapshot() ([][]Card, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	return s.board.Snapshot(), nil
}

// RemainingPairs returns the number of pairs left to match
func (s *GameSession) RemainingPairs() int {
	if s.board == nil {
		return 0
	}
	return s.board.UnmatchedCount() / 2
}

// History returns the attempts made in the current game, oldest first
func (s *GameSession) History() []MatchRecord {
	history := make([]MatchRecord, len(s.history))
	copy(history, s.history)
	return history
}

// Winners returns the players sharing the highest score
func (s *GameSession) Winners() ([]*Player, error) {
	if err := s.requireStarted(); err != nil {
		return nil, err
	}
	best := -1
	var winners []*Player
	for _, p := range s.players {
		switch {
		case p.score > best:
			best = p.score
			winners = []*Player{p}
		case p.score == best:
			winners = append(winners, p)
		}
	}
	return winners, nil
}
