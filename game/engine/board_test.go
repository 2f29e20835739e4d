package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestBoard() *Board {
	return NewBoard(rand.New(rand.NewSource(42)))
}

// gridOf builds a row-major grid from type ids
func gridOf(rows ...[]int) [][]Card {
	grid := make([][]Card, len(rows))
	for y, row := range rows {
		grid[y] = make([]Card, len(row))
		for x, typeID := range row {
			grid[y][x] = NewCard(typeID)
		}
	}
	return grid
}

func countTypes(grid [][]Card) map[int]int {
	counts := make(map[int]int)
	for _, row := range grid {
		for _, card := range row {
			counts[card.TypeID()]++
		}
	}
	return counts
}

func TestBoard_Create(t *testing.T) {
	tests := []struct {
		name          string
		columns, rows int
		cardTypes     int
		wantErr       error
	}{
		{"default layout", 6, 8, 6, nil},
		{"single pair", 2, 1, 1, nil},
		{"more types than pairs", 2, 2, 10, nil},
		{"single type fills board", 4, 4, 1, nil},
		{"odd cell count", 3, 3, 2, ErrInvalidSize},
		{"zero columns", 0, 4, 2, ErrInvalidSize},
		{"negative rows", 2, -2, 2, ErrInvalidSize},
		{"zero card types", 2, 2, 0, ErrInvalidArgument},
		{"negative card types", 2, 2, -1, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard()
			err := board.Create(tt.columns, tt.rows, tt.cardTypes)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if board.IsPopulated() {
					t.Error("Failed create should leave the board empty")
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to create board: %v", err)
			}

			columns, rows := board.Dimensions()
			if columns != tt.columns || rows != tt.rows {
				t.Errorf("Expected %dx%d, got %dx%d", tt.columns, tt.rows, columns, rows)
			}

			grid := board.Snapshot()
			if len(grid) != tt.rows || len(grid[0]) != tt.columns {
				t.Fatalf("Snapshot has wrong shape: %d rows, %d columns", len(grid), len(grid[0]))
			}
			for typeID, count := range countTypes(grid) {
				if count%2 != 0 {
					t.Errorf("Card type %d occurs %d times", typeID, count)
				}
				if typeID < 0 || typeID >= tt.cardTypes {
					t.Errorf("Card type %d outside [0, %d)", typeID, tt.cardTypes)
				}
			}
			if board.UnmatchedCount() != tt.columns*tt.rows {
				t.Errorf("Expected all %d cards unmatched, got %d", tt.columns*tt.rows, board.UnmatchedCount())
			}
		})
	}
}

func TestBoard_CreateParityAcrossSeeds(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		board := NewBoard(rand.New(rand.NewSource(seed)))
		if err := board.Create(4, 6, 5); err != nil {
			t.Fatalf("seed %d: failed to create board: %v", seed, err)
		}
		for typeID, count := range countTypes(board.Snapshot()) {
			if count%2 != 0 {
				t.Fatalf("seed %d: card type %d occurs %d times", seed, typeID, count)
			}
		}
	}
}

func TestBoard_CreateIsDeterministicForSeed(t *testing.T) {
	a := NewBoard(rand.New(rand.NewSource(7)))
	b := NewBoard(rand.New(rand.NewSource(7)))
	if err := a.Create(6, 8, 6); err != nil {
		t.Fatal(err)
	}
	if err := b.Create(6, 8, 6); err != nil {
		t.Fatal(err)
	}

	gridA, gridB := a.Snapshot(), b.Snapshot()
	for y := range gridA {
		for x := range gridA[y] {
			if gridA[y][x] != gridB[y][x] {
				t.Fatalf("Boards differ at (%d, %d)", x, y)
			}
		}
	}
}

func TestBoard_Load(t *testing.T) {
	t.Run("valid grid", func(t *testing.T) {
		board := newTestBoard()
		err := board.Load(gridOf(
			[]int{0, 1, 2},
			[]int{2, 1, 0},
		))
		if err != nil {
			t.Fatalf("Failed to load board: %v", err)
		}
		if board.Columns() != 3 || board.Rows() != 2 {
			t.Errorf("Expected 3x2, got %dx%d", board.Columns(), board.Rows())
		}
		card, err := board.Get(2, 1)
		if err != nil {
			t.Fatal(err)
		}
		if card.TypeID() != 0 {
			t.Errorf("Expected type 0 at (2, 1), got %d", card.TypeID())
		}
	})

	t.Run("same type four times", func(t *testing.T) {
		board := newTestBoard()
		if err := board.Load(gridOf([]int{5, 5}, []int{5, 5})); err != nil {
			t.Fatalf("Failed to load board: %v", err)
		}
	})

	t.Run("odd cell count", func(t *testing.T) {
		board := newTestBoard()
		err := board.Load(gridOf([]int{0, 0, 1}))
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize, got %v", err)
		}
	})

	t.Run("empty grid", func(t *testing.T) {
		board := newTestBoard()
		if err := board.Load(nil); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize, got %v", err)
		}
	})

	t.Run("ragged grid", func(t *testing.T) {
		board := newTestBoard()
		err := board.Load(gridOf([]int{0, 0}, []int{1, 1, 2, 2}))
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize, got %v", err)
		}
	})

	t.Run("unpaired type", func(t *testing.T) {
		board := newTestBoard()
		err := board.Load(gridOf([]int{0, 1}, []int{1, 1}))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("failed load keeps previous board", func(t *testing.T) {
		board := newTestBoard()
		if err := board.Load(gridOf([]int{3, 3})); err != nil {
			t.Fatal(err)
		}
		if err := board.Load(gridOf([]int{0, 1}, []int{1, 1})); err == nil {
			t.Fatal("Expected error for unpaired grid")
		}
		if board.Columns() != 2 || board.Rows() != 1 {
			t.Errorf("Board changed after failed load: %dx%d", board.Columns(), board.Rows())
		}
	})

	t.Run("input is copied", func(t *testing.T) {
		board := newTestBoard()
		grid := gridOf([]int{0, 0})
		if err := board.Load(grid); err != nil {
			t.Fatal(err)
		}
		grid[0][0] = NewCard(9)
		card, _ := board.Get(0, 0)
		if card.TypeID() != 0 {
			t.Error("Mutating the input grid changed the board")
		}
	})

	t.Run("matched flags are cleared", func(t *testing.T) {
		board := newTestBoard()
		grid := gridOf([]int{0, 1}, []int{1, 0})
		grid[0][0].matched = true
		grid[1][1].matched = true
		if err := board.Load(grid); err != nil {
			t.Fatal(err)
		}
		if board.UnmatchedCount() != 4 {
			t.Errorf("Expected every loaded card unmatched, got %d unmatched", board.UnmatchedCount())
		}
		if !grid[0][0].IsMatched() {
			t.Error("Load modified the input grid")
		}
	})
}

func TestBoard_GetOutOfRange(t *testing.T) {
	board := newTestBoard()
	if _, err := board.Get(0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange on empty board, got %v", err)
	}

	if err := board.Create(4, 2, 2); err != nil {
		t.Fatal(err)
	}

	positions := []Position{{-1, 0}, {0, -1}, {4, 0}, {0, 2}, {4, 2}, {100, 100}}
	for _, pos := range positions {
		if _, err := board.Get(pos.X, pos.Y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d, %d): expected ErrOutOfRange, got %v", pos.X, pos.Y, err)
		}
		if err := board.SetMatched(pos.X, pos.Y, true); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetMatched(%d, %d): expected ErrOutOfRange, got %v", pos.X, pos.Y, err)
		}
	}
}

func TestBoard_SetMatched(t *testing.T) {
	board := newTestBoard()
	if err := board.Load(gridOf([]int{1, 2}, []int{2, 1})); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := board.SetMatched(1, 0, true); err != nil {
			t.Fatalf("SetMatched call %d failed: %v", i+1, err)
		}
	}

	card, _ := board.Get(1, 0)
	if !card.IsMatched() {
		t.Error("Expected card to be matched")
	}
	if card.TypeID() != 2 {
		t.Errorf("SetMatched changed the type to %d", card.TypeID())
	}
	if board.UnmatchedCount() != 3 {
		t.Errorf("Expected 3 unmatched cards, got %d", board.UnmatchedCount())
	}

	if err := board.SetMatched(1, 0, false); err != nil {
		t.Fatal(err)
	}
	card, _ = board.Get(1, 0)
	if card.IsMatched() {
		t.Error("Expected card to be unmatched again")
	}
}

func TestBoard_SnapshotIsIndependent(t *testing.T) {
	board := newTestBoard()
	if err := board.Create(2, 2, 2); err != nil {
		t.Fatal(err)
	}

	snapshot := board.Snapshot()
	snapshot[0][0] = Card{typeID: 99, matched: true}
	snapshot[1] = nil

	card, err := board.Get(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if card.IsMatched() || card.TypeID() == 99 {
		t.Error("Mutating a snapshot changed the board")
	}
	if len(board.Snapshot()[1]) != 2 {
		t.Error("Board row was affected by snapshot mutation")
	}
}

func TestBoard_AllMatched(t *testing.T) {
	board := newTestBoard()
	if board.AllMatched() {
		t.Error("Empty board should not report all matched")
	}
	if err := board.Load(gridOf([]int{0, 0})); err != nil {
		t.Fatal(err)
	}
	board.SetMatched(0, 0, true)
	if board.AllMatched() {
		t.Error("Board with an unmatched card reported all matched")
	}
	board.SetMatched(1, 0, true)
	if !board.AllMatched() {
		t.Error("Expected board to be all matched")
	}
}
