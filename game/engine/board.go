package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Board is a fixed-size grid of cards. Cells are stored row-major in a flat
// slice indexed by y*columns+x.
type Board struct {
	columns int
	rows    int
	cards   []Card
	rng     *rand.Rand
}

// NewBoard creates an empty board. A nil rng falls back to a time-seeded source.
func NewBoard(rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Board{rng: rng}
}

// Columns returns the number of columns (x axis)
func (b *Board) Columns() int {
	return b.columns
}

// Rows returns the number of rows (y axis)
func (b *Board) Rows() int {
	return b.rows
}

// Dimensions returns the column and row counts
func (b *Board) Dimensions() (columns, rows int) {
	return b.columns, b.rows
}

// IsPopulated reports whether the board was created or loaded
func (b *Board) IsPopulated() bool {
	return len(b.cards) > 0
}

// InBounds reports whether x,y addresses a cell of the board
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.columns && y >= 0 && y < b.rows
}

// Create fills the board with randomly placed pairs of cards
func (b *Board) Create(columns, rows, cardTypeCount int) error {
	if columns <= 0 || rows <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidSize, columns, rows)
	}
	if (columns*rows)%2 != 0 {
		return fmt.Errorf("%w: %dx%d has an odd number of cells", ErrInvalidSize, columns, rows)
	}
	if cardTypeCount <= 0 {
		return fmt.Errorf("%w: card type count must be positive, got %d", ErrInvalidArgument, cardTypeCount)
	}

	cards := make([]Card, columns*rows)

	// Every cell index is a free placement until a pair lands on it.
	free := make([]int, len(cards))
	for i := range free {
		free[i] = i
	}

	for len(free) > 0 {
		cardType := b.rng.Intn(cardTypeCount)

		// Place cards in pairs
		for i := 0; i < 2; i++ {
			pick := b.rng.Intn(len(free))
			cards[free[pick]] = NewCard(cardType)

			last := len(free) - 1
			free[pick] = free[last]
			free = free[:last]
		}
	}

	b.columns, b.rows, b.cards = columns, rows, cards
	return nil
}

// Load replaces the board with a copy of an externally built row-major grid.
// Every card starts unmatched, whatever its flag in grid.
func (b *Board) Load(grid [][]Card) error {
	rows := len(grid)
	if rows == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("%w: grid is empty", ErrInvalidSize)
	}
	columns := len(grid[0])

	for y, row := range grid {
		if len(row) != columns {
			return fmt.Errorf("%w: row %d has %d cards, expected %d", ErrInvalidSize, y, len(row), columns)
		}
	}
	if (columns*rows)%2 != 0 {
		return fmt.Errorf("%w: %dx%d has an odd number of cells", ErrInvalidSize, columns, rows)
	}

	counts := make(map[int]int)
	cards := make([]Card, 0, columns*rows)
	for _, row := range grid {
		for _, card := range row {
			counts[card.typeID]++
			cards = append(cards, NewCard(card.typeID))
		}
	}

	for typeID, count := range counts {
		if count%2 != 0 {
			return fmt.Errorf("%w: card type %d occurs %d times and cannot be paired", ErrInvalidArgument, typeID, count)
		}
	}

	b.columns, b.rows, b.cards = columns, rows, cards
	return nil
}

// Get returns a copy of the card at x,y
func (b *Board) Get(x, y int) (Card, error) {
	if !b.InBounds(x, y) {
		return Card{}, b.outOfRange(x, y)
	}
	return b.cards[y*b.columns+x], nil
}

// SetMatched updates the matched flag of the card at x,y. The type is untouched.
func (b *Board) SetMatched(x, y int, matched bool) error {
	if !b.InBounds(x, y) {
		return b.outOfRange(x, y)
	}
	b.cards[y*b.columns+x].matched = matched
	return nil
}

// Snapshot returns an independent row-major copy of the grid
func (b *Board) Snapshot() [][]Card {
	grid := make([][]Card, b.rows)
	for y := range grid {
		grid[y] = make([]Card, b.columns)
		copy(grid[y], b.cards[y*b.columns:(y+1)*b.columns])
	}
	return grid
}

// AllMatched reports whether every card on a populated board is matched
func (b *Board) AllMatched() bool {
	return b.IsPopulated() && b.UnmatchedCount() == 0
}

// UnmatchedCount returns the number of cards still in play
func (b *Board) UnmatchedCount() int {
	count := 0
	for _, card := range b.cards {
		if !card.matched {
			count++
		}
	}
	return count
}

func (b *Board) outOfRange(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) is outside a %dx%d board", ErrOutOfRange, x, y, b.columns, b.rows)
}
