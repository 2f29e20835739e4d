// Package engine provides the core rules of the memory card game.
//
// The engine package implements the game mechanics including:
//   - Randomized, pair-balanced board generation
//   - Pair matching and scoring
//   - Turn rotation across players
//   - Game-over detection and notification
//
// Core Types:
//
// Board owns the grid of cards. GameSession owns a Board and the ordered
// list of players and drives the game state machine
// (not started, running, ended). BoardConfig describes a board layout and
// can be loaded from JSON files.
//
// Coordinates:
//
// x is the column index and y is the row index, both zero-based. Grids
// handed to or returned by the engine are row-major, so grid[y][x] is the
// card at column x of row y.
//
// Usage:
//
//	game := engine.NewGameSession()
//	game.AddGameOverHandler(func(s *engine.GameSession) {
//		winners, _ := s.Winners()
//		fmt.Println("game over, winners:", winners)
//	})
//
//	if err := game.StartWithConfig(engine.DefaultBoardConfig(), 2); err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := game.AttemptMatch(0, 0, 1, 0)
//	if errors.Is(err, engine.ErrAlreadyMatched) {
//		// pick other cards
//	}
//
// A GameSession is not safe for concurrent use. Callers that share a
// session between goroutines must serialize access themselves.
package engine
