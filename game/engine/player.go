package engine

import "fmt"

// Player is a participant in a game session. The identifier is opaque to the
// engine; the score is only changed by the session the player is playing in.
type Player struct {
	Identifier string
	score      int
}

// NewPlayer creates a player with the given identifier
func NewPlayer(identifier string) *Player {
	return &Player{Identifier: identifier}
}

// Score returns the number of pairs this player has matched
func (p *Player) Score() int {
	return p.score
}

// String implements fmt.Stringer
func (p *Player) String() string {
	return fmt.Sprintf("%s (%d)", p.Identifier, p.score)
}

func generatePlayers(count int) []*Player {
	players := make([]*Player, count)
	for i := range players {
		players[i] = NewPlayer(fmt.Sprintf("player-%d", i+1))
	}
	return players
}
