// Package session provides session management for the memory game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Game-over bookkeeping for every session it creates
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session it returns wraps its own engine.GameSession together
// with the board configuration, the player setup and access timestamps.
//
// Session Identifiers:
//
// Generated IDs are the first 8 hex characters of a random UUID. Lookups are
// case-insensitive, so "AbC1" and "abc1" name the same session.
//
// Game Over:
//
// Create registers a game-over handler on the engine before the first deal.
// The handler stays registered across restarts; each time a game completes it
// stamps the session's end time and logs the winners.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", config, service.PlayerSetup{Names: []string{"alice", "bob"}})
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than a day
//	manager.CleanupExpiredSessions(24 * time.Hour)
package session
