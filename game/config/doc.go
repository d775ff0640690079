// Package config provides puzzle management for the Flow Puzzle server.
//
// The config package handles:
//   - Loading puzzle definitions from JSON files
//   - Puzzle validation and caching
//   - Default puzzle selection
//   - Puzzle discovery and listing
//
// Puzzle Format:
//
// Puzzles are stored as JSON files in the puzzles directory. Each puzzle
// defines:
//   - Grid layout using character mapping ('.'=empty, uppercase letters for
//     endpoint pairs)
//   - A legend mapping each layout letter to a color name
//   - Messages shown on welcome, solve, and rejected moves
//
// Usage:
//
//	manager, err := config.NewManager("puzzles")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific puzzle
//	puzzle, err := manager.LoadPuzzle("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get the default puzzle
//	defaultPuzzle := manager.GetDefault()
//
//	// List available puzzles
//	puzzles, err := manager.ListPuzzles()
//
// Loaded puzzles are cached; RefreshCache drops the cache and re-reads the
// directory.
package config
