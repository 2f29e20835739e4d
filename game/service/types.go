package service

import (
	"time"

	"github.com/wricardo/memory-game/game/engine"
)

// Event types reported by the service
const (
	EventMatch    = "match"
	EventNoMatch  = "no_match"
	EventTurn     = "turn"
	EventGameOver = "game_over"
)

// CreateSessionRequest describes a new game. Players takes precedence over
// PlayerCount; with neither set a single player is generated.
type CreateSessionRequest struct {
	ConfigName  string   `json:"config_name"`
	Players     []string `json:"players,omitempty"`
	PlayerCount int      `json:"player_count,omitempty"`
	Seed        int64    `json:"seed,omitempty"`
}

// PlayerSetup records how the players of a session are built on every start
type PlayerSetup struct {
	Names []string `json:"names,omitempty"`
	Count int      `json:"count,omitempty"`
	Seed  int64    `json:"seed,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	Status         engine.Status       `json:"status"`
	Columns        int                 `json:"columns"`
	Rows           int                 `json:"rows"`
	CurrentPlayer  int                 `json:"current_player"`
	Players        []PlayerInfo        `json:"players"`
	Board          [][]CardView        `json:"board"`
	RemainingPairs int                 `json:"remaining_pairs"`
	Attempts       int                 `json:"attempts"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	EndedAt        *time.Time          `json:"ended_at,omitempty"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// PlayerInfo is a read-only view of a player
type PlayerInfo struct {
	Index      int    `json:"index"`
	Identifier string `json:"identifier"`
	Score      int    `json:"score"`
	Current    bool   `json:"current"`
	Winner     bool   `json:"winner,omitempty"`
}

// CardView is a read-only view of a board cell
type CardView struct {
	TypeID  int  `json:"type_id"`
	Matched bool `json:"matched"`
}

// CardReveal is a card turned over during a match attempt
type CardReveal struct {
	Position engine.Position `json:"position"`
	TypeID   int             `json:"type_id"`
}

// MatchOutcome contains the result of a match attempt
type MatchOutcome struct {
	Result  engine.MatchResult `json:"result"`
	Player  PlayerInfo         `json:"player"`
	First   CardReveal         `json:"first"`
	Second  CardReveal         `json:"second"`
	Events  []GameEvent        `json:"events"`
	Session *SessionInfo       `json:"session"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player,omitempty"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	Columns       int    `json:"columns"`
	Rows          int    `json:"rows"`
	CardTypeCount int    `json:"card_type_count"`
	Pairs         int    `json:"pairs"`
}
