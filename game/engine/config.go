package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
)

// ValidatePuzzleConfig validates a puzzle definition for correctness and playability
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid size
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	// Validate layout shape
	if len(config.Layout) != config.GridSize {
		return fmt.Errorf("config validation: layout must have %d rows to match grid_size, got %d",
			config.GridSize, len(config.Layout))
	}

	// Validate characters and count endpoint letters
	letterCounts := make(map[rune]int)
	for i, row := range config.Layout {
		if len(row) != config.GridSize {
			return fmt.Errorf("config validation: row %d must have %d characters to match grid_size, got %d",
				i+1, config.GridSize, len(row))
		}

		for j, char := range row {
			switch {
			case char == EmptyCell:
			case char >= 'A' && char <= 'Z':
				letterCounts[char]++
			default:
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", char, i+1, j+1)
			}
		}
	}

	if len(letterCounts) == 0 {
		return fmt.Errorf("config validation: layout must contain at least one endpoint pair")
	}

	// Every letter appears exactly twice and names a color in the legend
	for letter, count := range letterCounts {
		if count != 2 {
			return fmt.Errorf("config validation: letter '%c' appears %d times in layout, want 2", letter, count)
		}
		if color, ok := config.Legend[string(letter)]; !ok || color == "" {
			return fmt.Errorf("config validation: legend['%c'] must name a color for the layout letter", letter)
		}
	}

	// Legend entries must refer to letters actually on the board, and colors
	// must not collide between letters
	seenColors := make(map[string]string)
	for key, color := range config.Legend {
		if len(key) != 1 || key[0] < 'A' || key[0] > 'Z' {
			return fmt.Errorf("config validation: legend key '%s' must be a single uppercase letter", key)
		}
		if _, ok := letterCounts[rune(key[0])]; !ok {
			return fmt.Errorf("config validation: legend['%s'] has no matching letter in layout", key)
		}
		if prev, dup := seenColors[color]; dup {
			return fmt.Errorf("config validation: legend['%s'] and legend['%s'] both map to color '%s'", prev, key, color)
		}
		seenColors[color] = key
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Solved == "" {
		return fmt.Errorf("config validation: messages.solved is required")
	}
	if config.Messages.InvalidMove == "" {
		return fmt.Errorf("config validation: messages.invalid_move is required")
	}

	return nil
}

// EndpointsFromConfig translates a validated layout into the board core's
// endpoint list, in row-major order
func EndpointsFromConfig(config *PuzzleConfig) []board.Endpoint {
	var endpoints []board.Endpoint
	for r, row := range config.Layout {
		for c, char := range row {
			if char == EmptyCell {
				continue
			}
			endpoints = append(endpoints, board.Endpoint{
				Pos:   board.Pos{Row: r, Col: c},
				Color: board.ColorID(config.Legend[string(char)]),
			})
		}
	}
	return endpoints
}

// LoadPuzzleConfig loads a puzzle definition from a JSON file
func LoadPuzzleConfig(filename string) (*PuzzleConfig, error) {
	// Support PUZZLE_DIR environment variable for alternative puzzle directory
	configPath := filename
	if puzzleDir := os.Getenv("PUZZLE_DIR"); puzzleDir != "" {
		if strings.HasPrefix(filename, "puzzles/") {
			configPath = filepath.Join(puzzleDir, strings.TrimPrefix(filename, "puzzles/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadPuzzleByName loads a puzzle definition by name from the puzzles directory
func LoadPuzzleByName(puzzleName string) (*PuzzleConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(puzzleName, ".json") {
		puzzleName = puzzleName + ".json"
	}

	configPath := filepath.Join("puzzles", puzzleName)

	// Check if puzzle file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle file '%s' not found", puzzleName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle file '%s': %v", puzzleName, err)
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle file '%s': %v", puzzleName, err)
	}

	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid puzzle '%s': %v", puzzleName, err)
	}

	return &config, nil
}

// DefaultPuzzleConfig returns the built-in puzzle used when no file is given
func DefaultPuzzleConfig() *PuzzleConfig {
	config := &PuzzleConfig{
		Name:        "classic",
		Description: "Classic 5x5 board with two colors",
		GridSize:    5,
		Layout: []string{
			"R....",
			"...B.",
			"..R..",
			".....",
			"...B.",
		},
		Legend: map[string]string{
			"B": "blue",
			"R": "red",
		},
	}
	config.Messages.Welcome = "Connect each pair of colored dots with a single path. Fill every cell to win!"
	config.Messages.Solved = "Puzzle solved! Every cell is covered and all colors are connected."
	config.Messages.InvalidMove = "Can't draw there!"
	return config
}
