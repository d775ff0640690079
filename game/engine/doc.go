// Package engine wraps the board core with puzzle definitions and state
// snapshots for the Flow Puzzle server.
//
// The engine package implements:
//   - Puzzle definition loading and validation
//   - Translating a layout into the board core's endpoint list
//   - Draw/erase/reset operations against one live board
//   - JSON-friendly state snapshots for the transport layers
//
// Core Types:
//
// The Engine interface defines the contract for game operations, implemented
// by GameEngine. GameState is a read-only snapshot of the live board, while
// PuzzleConfig defines the grid layout and endpoint colors loaded from JSON
// files.
//
// Usage:
//
//	config, err := engine.LoadPuzzleConfig("puzzles/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Draw one step of a path
//	err = gameEngine.Extend(board.Pos{Row: 1, Col: 1}, board.Pos{Row: 1, Col: 2})
//	state := gameEngine.State()
//
// Game Rules:
//
// The grid holds pairs of colored endpoints. The player draws one contiguous
// path per color joining its two endpoints; drawing over an existing path
// truncates it from the overwritten cell onward. The puzzle is solved when
// every cell is covered and every color's endpoints are connected.
package engine
