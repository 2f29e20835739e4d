package engine

// Card is a single tile on the board. Its type id never changes once created.
type Card struct {
	typeID  int
	matched bool
}

// NewCard creates an unmatched card of the given type
func NewCard(typeID int) Card {
	return Card{typeID: typeID}
}

// TypeID returns the identifier used to pair this card with others
func (c Card) TypeID() int {
	return c.typeID
}

// IsMatched reports whether a player already matched this card
func (c Card) IsMatched() bool {
	return c.matched
}

// Matches reports whether both cards share the same type
func (c Card) Matches(other Card) bool {
	return c.typeID == other.typeID
}
