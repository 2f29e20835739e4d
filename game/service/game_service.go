package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/memory-game/game/engine"
)

// ErrConfigNotFound is returned by a ConfigManager asked for an unknown preset
var ErrConfigNotFound = errors.New("configuration not found")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	AttemptMatch(ctx context.Context, sessionID string, first, second engine.Position) (*MatchOutcome, error)
	Restart(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Game State
	GetHistory(ctx context.Context, sessionID string) ([]engine.MatchRecord, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.BoardConfig, setup PlayerSetup) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.BoardConfig, setup PlayerSetup) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BoardConfig
}

// Session represents an active game session
type Session struct {
	ID        string
	Game      *engine.GameSession
	Config    *engine.BoardConfig
	Setup     PlayerSetup
	CreatedAt time.Time

	mu             sync.Mutex
	lastAccessedAt time.Time
	endedAt        time.Time
}

// NewSession wraps an unstarted engine session. Call Start to deal the board.
func NewSession(id string, config *engine.BoardConfig, setup PlayerSetup) *Session {
	var opts []engine.Option
	if setup.Seed != 0 {
		opts = append(opts, engine.WithSeed(setup.Seed))
	}
	now := time.Now()
	return &Session{
		ID:             id,
		Game:           engine.NewGameSession(opts...),
		Config:         config,
		Setup:          setup,
		CreatedAt:      now,
		lastAccessedAt: now,
	}
}

// Start deals a fresh board for the session's players, discarding any game in progress
func (s *Session) Start() error {
	s.mu.Lock()
	s.endedAt = time.Time{}
	s.mu.Unlock()

	if len(s.Setup.Names) > 0 {
		players := make([]*engine.Player, len(s.Setup.Names))
		for i, name := range s.Setup.Names {
			players[i] = engine.NewPlayer(name)
		}
		return s.Game.StartWithConfigAndPlayers(*s.Config, players)
	}
	return s.Game.StartWithConfig(*s.Config, s.Setup.Count)
}

// Touch records an access now
func (s *Session) Touch() {
	s.TouchAt(time.Now())
}

// TouchAt records an access at the given time
func (s *Session) TouchAt(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessedAt = at
}

// LastAccessed returns when the session was last accessed
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessedAt
}

// MarkEnded records when the current game was completed
func (s *Session) MarkEnded(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endedAt = at
}

// EndedAt returns when the current game was completed, if it was
func (s *Session) EndedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt, !s.endedAt.IsZero()
}
