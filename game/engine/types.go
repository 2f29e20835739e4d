package engine

import "fmt"

const (
	// Validation constants for board configurations
	MinBoardDimension = 1
	MaxBoardDimension = 26
	MinCardTypes      = 1
	MaxCardTypes      = 64

	DefaultColumns       = 6
	DefaultRows          = 8
	DefaultCardTypeCount = 6
)

// Status is the lifecycle state of a game session
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusEnded
)

// String returns the wire name of the status
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MatchResult is the outcome of a match attempt
type MatchResult int

const (
	NoMatch MatchResult = iota
	Match
)

// String returns the wire name of the result
func (r MatchResult) String() string {
	if r == Match {
		return "match"
	}
	return "no_match"
}

// MarshalText implements encoding.TextMarshaler
func (r MatchResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Position represents x,y coordinates on the board
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoardConfig describes the layout of a board
type BoardConfig struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Columns       int    `json:"columns"`
	Rows          int    `json:"rows"`
	CardTypeCount int    `json:"card_type_count"`
}

// Cells returns the number of cards on a board built from this config
func (c BoardConfig) Cells() int {
	return c.Columns * c.Rows
}

// Pairs returns the number of pairs on a board built from this config
func (c BoardConfig) Pairs() int {
	return c.Cells() / 2
}

// MatchRecord is a single entry in the match history of a game
type MatchRecord struct {
	Attempt     int         `json:"attempt"`
	PlayerIndex int         `json:"player_index"`
	First       Position    `json:"first"`
	Second      Position    `json:"second"`
	FirstType   int         `json:"first_type"`
	SecondType  int         `json:"second_type"`
	Result      MatchResult `json:"result"`
}
