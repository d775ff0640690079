package engine

import (
	"fmt"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
)

// Engine provides the main interface for puzzle operations
type Engine interface {
	// Game state
	State() *GameState
	IsSolved() bool
	Board() *board.Board

	// Path operations
	Extend(prev, cur board.Pos) error
	Erase(origin board.Pos)
	Reset() *GameState

	// Configuration
	GetConfig() *PuzzleConfig
	SetConfig(config *PuzzleConfig) error

	// Persistence
	RestorePaths(paths map[board.ColorID][]board.Pos) error
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config  *PuzzleConfig
	board   *board.Board
	moves   int
	message string
}

// NewEngine creates a new puzzle engine with the provided configuration
func NewEngine(config *PuzzleConfig) (*GameEngine, error) {
	if config == nil {
		config = DefaultPuzzleConfig()
	}
	if err := ValidatePuzzleConfig(config); err != nil {
		return nil, err
	}

	b, err := board.New(config.GridSize, EndpointsFromConfig(config))
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		config:  config,
		board:   b,
		message: config.Messages.Welcome,
	}, nil
}

// State returns a snapshot of the current game state
func (e *GameEngine) State() *GameState {
	dim := e.board.Dim()
	grid := make([][]CellState, dim)
	for r := 0; r < dim; r++ {
		grid[r] = make([]CellState, dim)
		for c := 0; c < dim; c++ {
			p := board.Pos{Row: r, Col: c}
			grid[r][c] = CellState{
				Color:    string(e.board.ColorAt(p)),
				Endpoint: e.board.IsEndpoint(p),
			}
		}
	}

	return &GameState{
		PuzzleName: e.config.Name,
		GridSize:   dim,
		Grid:       grid,
		Endpoints:  e.board.Endpoints(),
		Paths:      e.board.Paths(),
		Solved:     e.board.Solved(),
		Moves:      e.moves,
		Message:    e.message,
	}
}

// IsSolved reports whether the puzzle is in a winning configuration
func (e *GameEngine) IsSolved() bool {
	return e.board.Solved()
}

// Board returns the live board. Callers must not retain it across Reset.
func (e *GameEngine) Board() *board.Board {
	return e.board
}

// Extend grows a path by one step from prev onto cur
func (e *GameEngine) Extend(prev, cur board.Pos) error {
	if err := e.board.ExtendPath(prev, cur); err != nil {
		e.message = e.config.Messages.InvalidMove
		return err
	}

	e.moves++
	if e.board.Solved() {
		e.message = e.config.Messages.Solved
	} else {
		e.message = fmt.Sprintf("Drew %s at %s", e.board.ColorAt(cur), cur)
	}
	return nil
}

// Erase removes the path covering origin, from origin onward
func (e *GameEngine) Erase(origin board.Pos) {
	e.board.TruncatePath(origin)
	e.message = fmt.Sprintf("Erased from %s", origin)
}

// Reset clears all paths and restores the initial board
func (e *GameEngine) Reset() *GameState {
	// The config was validated at construction, so this cannot fail
	b, _ := board.New(e.config.GridSize, EndpointsFromConfig(e.config))
	e.board = b
	e.moves = 0
	e.message = e.config.Messages.Welcome
	return e.State()
}

// GetConfig returns the current puzzle configuration
func (e *GameEngine) GetConfig() *PuzzleConfig {
	return e.config
}

// SetConfig switches to a new puzzle and resets the board
func (e *GameEngine) SetConfig(config *PuzzleConfig) error {
	if err := ValidatePuzzleConfig(config); err != nil {
		return err
	}

	b, err := board.New(config.GridSize, EndpointsFromConfig(config))
	if err != nil {
		return err
	}

	e.config = config
	e.board = b
	e.moves = 0
	e.message = config.Messages.Welcome
	return nil
}

// RestorePaths replays saved paths onto a freshly reset board. Used by the
// persistence layer when resuming a saved game.
func (e *GameEngine) RestorePaths(paths map[board.ColorID][]board.Pos) error {
	e.Reset()
	for color, path := range paths {
		for i := 1; i < len(path); i++ {
			if err := e.board.ExtendPath(path[i-1], path[i]); err != nil {
				e.Reset()
				return fmt.Errorf("restore %s path: %w", color, err)
			}
		}
	}
	e.moves = 0
	e.message = e.config.Messages.Welcome
	if e.board.Solved() {
		e.message = e.config.Messages.Solved
	}
	return nil
}
