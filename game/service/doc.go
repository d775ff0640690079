// Package service provides the business logic layer for the Flow Puzzle
// server.
//
// The service package implements:
//   - The single hosted game shared by all transports
//   - Draw, erase, reset, and puzzle-switch operations
//   - Win checking with per-color progress reporting
//   - Automatic progress persistence through a ProgressStore
//
// Architecture:
//
// The service sits between the transports (REST API, WebSocket, MCP) and the
// game engine. Exactly one game is hosted at a time; a mutex serializes all
// operations, so concurrent HTTP handlers and MCP tool calls see a consistent
// board.
//
// Usage:
//
//	manager, _ := config.NewManager("puzzles")
//	store, _ := save.NewFileStore("saves")
//	svc, err := service.NewGameService(manager, store)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, _ := svc.Move(ctx, board.Pos{Row: 1, Col: 1}, board.Pos{Row: 1, Col: 2})
//	if !result.Success {
//		log.Printf("rejected: %s", result.Code)
//	}
//
// Rejected moves are not errors at this layer: Move returns a MoveResult with
// Success=false and a machine-readable Code. Errors are reserved for missing
// puzzles and infrastructure failures.
package service
