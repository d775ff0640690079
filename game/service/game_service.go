package service

import (
	"context"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
)

// GameService defines all operations on the hosted game
type GameService interface {
	// Game state
	GetGameState(ctx context.Context) (*engine.GameState, error)
	CheckSolved(ctx context.Context) (*SolvedResult, error)
	DescribeCell(ctx context.Context, pos board.Pos) (*CellInfo, error)

	// Game operations
	LoadPuzzle(ctx context.Context, puzzleName string) (*engine.GameState, error)
	Move(ctx context.Context, prev, cur board.Pos) (*MoveResult, error)
	Erase(ctx context.Context, origin board.Pos) (*engine.GameState, error)
	Reset(ctx context.Context) (*engine.GameState, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	GetPuzzle(ctx context.Context, puzzleName string) (*engine.PuzzleConfig, error)
	SavePuzzle(ctx context.Context, config *engine.PuzzleConfig) error
}

// PuzzleManager handles puzzle definition loading
type PuzzleManager interface {
	LoadPuzzle(name string) (*engine.PuzzleConfig, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *engine.PuzzleConfig
	SavePuzzle(name string, config *engine.PuzzleConfig) error
}

// ProgressStore persists drawn paths so a game survives restarts
type ProgressStore interface {
	Save(puzzleID string, paths map[board.ColorID][]board.Pos) error
	Load(puzzleID string) (map[board.ColorID][]board.Pos, bool, error)
	Clear(puzzleID string) error
}
