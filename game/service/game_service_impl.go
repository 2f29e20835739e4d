package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/memory-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger.Named("service"),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates and starts a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	var err error
	if req.ConfigName != "" {
		config, err = s.configs.LoadConfig(req.ConfigName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", req.ConfigName, configIDs, err)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	setup := PlayerSetup{Names: req.Players, Count: req.PlayerCount, Seed: req.Seed}
	if len(setup.Names) == 0 && setup.Count == 0 {
		setup.Count = 1
	}

	session, err := s.sessions.Create("", config, setup)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := req.ConfigName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("config", configID),
		zap.Int("columns", config.Columns),
		zap.Int("rows", config.Rows),
	)

	info := s.buildSessionInfo(session)
	info.ConfigName = configID
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.buildSessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.buildSessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// AttemptMatch submits a match attempt for the current player of a session
func (s *gameServiceImpl) AttemptMatch(ctx context.Context, sessionID string, first, second engine.Position) (*MatchOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	game := sess.Game
	player, err := game.CurrentPlayer()
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	playerIndex, _ := game.CurrentPlayerIndex()

	gameOver := false
	handlerID := game.AddGameOverHandler(func(*engine.GameSession) {
		gameOver = true
	})
	defer game.RemoveGameOverHandler(handlerID)

	result, err := game.AttemptMatchAt(first, second)
	if err != nil {
		s.logger.Debug("match attempt rejected",
			zap.String("session_id", sessionID),
			zap.Int("x1", first.X), zap.Int("y1", first.Y),
			zap.Int("x2", second.X), zap.Int("y2", second.Y),
			zap.Error(err),
		)
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	firstCard, _ := game.Card(first.X, first.Y)
	secondCard, _ := game.Card(second.X, second.Y)

	now := time.Now()
	var events []GameEvent
	if result == engine.Match {
		events = append(events, GameEvent{
			Type:      EventMatch,
			Message:   fmt.Sprintf("%s matched a pair! Score: %d", player.Identifier, player.Score()),
			Timestamp: now,
			Player:    player.Identifier,
		})
	} else {
		events = append(events, GameEvent{
			Type:      EventNoMatch,
			Message:   fmt.Sprintf("%s turned over %d and %d", player.Identifier, firstCard.TypeID(), secondCard.TypeID()),
			Timestamp: now,
			Player:    player.Identifier,
		})
		next, _ := game.CurrentPlayer()
		events = append(events, GameEvent{
			Type:      EventTurn,
			Message:   fmt.Sprintf("It is %s's turn", next.Identifier),
			Timestamp: now,
			Player:    next.Identifier,
		})
	}

	if gameOver {
		winners, _ := game.Winners()
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.Identifier
		}
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   fmt.Sprintf("Game over! Winner: %s", strings.Join(names, ", ")),
			Timestamp: now,
		})
	}

	info := s.buildSessionInfo(sess)
	return &MatchOutcome{
		Result:  result,
		Player:  info.Players[playerIndex],
		First:   CardReveal{Position: first, TypeID: firstCard.TypeID()},
		Second:  CardReveal{Position: second, TypeID: secondCard.TypeID()},
		Events:  events,
		Session: info,
	}, nil
}

// Restart deals a fresh board for the same configuration and players
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Start(); err != nil {
		return nil, fmt.Errorf("session %s: failed to restart: %w", sessionID, err)
	}

	s.logger.Info("session restarted", zap.String("session_id", sessionID))
	return s.buildSessionInfo(sess), nil
}

// GetHistory returns the match attempts of the current game
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string) ([]engine.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return sess.Game.History(), nil
}

// ListConfigs returns all available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// buildSessionInfo converts engine state into a SessionInfo view
func (s *gameServiceImpl) buildSessionInfo(sess *Session) *SessionInfo {
	game := sess.Game
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		Status:         game.Status(),
		RemainingPairs: game.RemainingPairs(),
		Attempts:       len(game.History()),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		BoardConfig:    sess.Config,
	}
	if endedAt, ok := sess.EndedAt(); ok {
		info.EndedAt = &endedAt
	}

	players, err := game.Players()
	if errors.Is(err, engine.ErrNotRunning) {
		return info
	}

	current, _ := game.CurrentPlayerIndex()
	info.CurrentPlayer = current

	winners := make(map[*engine.Player]bool)
	if game.IsGameOver() {
		ws, _ := game.Winners()
		for _, w := range ws {
			winners[w] = true
		}
	}

	info.Players = make([]PlayerInfo, len(players))
	for i, p := range players {
		info.Players[i] = PlayerInfo{
			Index:      i,
			Identifier: p.Identifier,
			Score:      p.Score(),
			Current:    i == current,
			Winner:     winners[p],
		}
	}

	info.Columns, info.Rows, _ = game.Dimensions()
	grid, _ := game.Snapshot()
	info.Board = make([][]CardView, len(grid))
	for y, row := range grid {
		info.Board[y] = make([]CardView, len(row))
		for x, card := range row {
			info.Board[y][x] = CardView{TypeID: card.TypeID(), Matched: card.IsMatched()}
		}
	}

	return info
}
