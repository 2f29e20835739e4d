// Package service provides the host-facing layer of the memory game.
//
// The service package implements:
//   - Multi-session game management
//   - Board configuration lookup
//   - Match attempt processing and event reporting
//   - Game restarts and match history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between a host application (terminal, UI, test
// harness) and the game engine. Engine sessions are not safe for concurrent
// use, so the service serializes every call that touches one. Each session
// owns its own engine.GameSession with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, err := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigName: "easy",
//		Players:    []string{"alice", "bob"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := gameService.AttemptMatch(ctx, info.ID,
//		engine.Position{X: 0, Y: 0}, engine.Position{X: 1, Y: 0})
//
// Events:
//
// Every successful attempt reports a list of GameEvents ("match",
// "no_match", "turn", "game_over") alongside the updated session
// view.
package service
