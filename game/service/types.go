package service

import (
	"time"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
)

// PuzzleInfo provides information about an available puzzle
type PuzzleInfo struct {
	Filename    string   `json:"filename"`
	PuzzleID    string   `json:"puzzle_id"` // The identifier to use when loading
	Name        string   `json:"name"`      // Display name
	Description string   `json:"description"`
	GridSize    int      `json:"grid_size"`
	Colors      []string `json:"colors"`
}

// MoveResult contains the result of a draw operation
type MoveResult struct {
	Success   bool              `json:"success"`
	Code      string            `json:"code,omitempty"` // Machine-friendly rejection code: out_of_bounds|not_adjacent|no_active_path|not_path_end|color_mismatch|same_endpoint_loop
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Solved    bool              `json:"solved"`
}

// SolvedResult reports the win check together with per-color progress
type SolvedResult struct {
	Solved         bool     `json:"solved"`
	CoveredCells   int      `json:"covered_cells"`
	TotalCells     int      `json:"total_cells"`
	ConnectedPairs []string `json:"connected_pairs"`
	PendingPairs   []string `json:"pending_pairs"`
	Message        string   `json:"message"`
}

// CellInfo describes a single cell of the hosted board
type CellInfo struct {
	Pos       board.Pos  `json:"pos"`
	Color     string     `json:"color,omitempty"`
	Endpoint  bool       `json:"endpoint"`
	Successor *board.Pos `json:"successor,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "draw", "erase", "reset", "load", "solved"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Position  board.Pos `json:"position,omitempty"`
}
