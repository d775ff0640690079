package engine

import "github.com/wricardo/mcp-training/flowpuzzle/game/board"

const (
	// Validation constants
	MinGridSize = 2
	MaxGridSize = 20

	// EmptyCell is the layout character for a cell without an endpoint.
	EmptyCell = '.'
)

// PuzzleConfig represents a puzzle definition loaded from JSON
type PuzzleConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend"`
	Messages    struct {
		Welcome     string `json:"welcome"`
		Solved      string `json:"solved"`
		InvalidMove string `json:"invalid_move"`
	} `json:"messages"`
}

// CellState is one grid cell in a state snapshot
type CellState struct {
	Color    string `json:"color,omitempty"`
	Endpoint bool   `json:"endpoint,omitempty"`
}

// GameState represents a complete snapshot of the hosted game. It is a copy:
// mutating it never affects the live board.
type GameState struct {
	PuzzleName string                         `json:"puzzle_name"`
	GridSize   int                            `json:"grid_size"`
	Grid       [][]CellState                  `json:"grid"`
	Endpoints  []board.Endpoint               `json:"endpoints"`
	Paths      map[board.ColorID][]board.Pos  `json:"paths"`
	Solved     bool                           `json:"solved"`
	Moves      int                            `json:"moves"`
	Message    string                         `json:"message"`
}
