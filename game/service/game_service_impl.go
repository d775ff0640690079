package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
)

// gameServiceImpl implements the GameService interface. It hosts exactly one
// game at a time; all transports share it.
type gameServiceImpl struct {
	puzzles  PuzzleManager
	store    ProgressStore
	engine   *engine.GameEngine
	puzzleID string
	mu       sync.Mutex
}

// NewGameService creates a game service hosting the default puzzle. If a
// progress store is given, previously saved paths for that puzzle are
// restored.
func NewGameService(puzzles PuzzleManager, store ProgressStore) (GameService, error) {
	config := puzzles.GetDefault()
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	s := &gameServiceImpl{
		puzzles:  puzzles,
		store:    store,
		engine:   eng,
		puzzleID: config.Name,
	}
	s.restoreProgress()
	return s, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State(), nil
}

// CheckSolved runs the win check and reports per-color progress
func (s *gameServiceImpl) CheckSolved(ctx context.Context) (*SolvedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.engine.Board()
	dim := b.Dim()

	covered := 0
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if b.ColorAt(board.Pos{Row: r, Col: c}) != "" {
				covered++
			}
		}
	}

	connectedSet := make(map[string]bool)
	allColors := make(map[string]bool)
	for _, ep := range b.Endpoints() {
		color := string(ep.Color)
		allColors[color] = true
		if connectedSet[color] {
			continue
		}
		if _, has := b.SuccessorOf(ep.Pos); !has {
			continue
		}
		path := b.PathFrom(ep.Pos)
		terminal := path[len(path)-1]
		if terminal != ep.Pos && b.IsEndpoint(terminal) {
			connectedSet[color] = true
		}
	}

	var connected, pending []string
	for color := range allColors {
		if connectedSet[color] {
			connected = append(connected, color)
		} else {
			pending = append(pending, color)
		}
	}
	sort.Strings(connected)
	sort.Strings(pending)

	solved := s.engine.IsSolved()
	message := fmt.Sprintf("%d of %d cells covered, %d of %d colors connected",
		covered, dim*dim, len(connected), len(allColors))
	if solved {
		message = s.engine.GetConfig().Messages.Solved
	}

	return &SolvedResult{
		Solved:         solved,
		CoveredCells:   covered,
		TotalCells:     dim * dim,
		ConnectedPairs: connected,
		PendingPairs:   pending,
		Message:        message,
	}, nil
}

// DescribeCell describes a single cell of the hosted board
func (s *gameServiceImpl) DescribeCell(ctx context.Context, pos board.Pos) (*CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.engine.Board()
	if pos.Row < 0 || pos.Row >= b.Dim() || pos.Col < 0 || pos.Col >= b.Dim() {
		return nil, fmt.Errorf("%w: %s on %dx%d board", board.ErrOutOfBounds, pos, b.Dim(), b.Dim())
	}

	info := &CellInfo{
		Pos:      pos,
		Color:    string(b.ColorAt(pos)),
		Endpoint: b.IsEndpoint(pos),
	}
	if succ, has := b.SuccessorOf(pos); has {
		info.Successor = &succ
	}
	return info, nil
}

// LoadPuzzle switches the hosted game to a different puzzle
func (s *gameServiceImpl) LoadPuzzle(ctx context.Context, puzzleName string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.puzzles.LoadPuzzle(puzzleName)
	if err != nil {
		// Provide helpful error message with available options
		if available, listErr := s.puzzles.ListPuzzles(); listErr == nil && len(available) > 0 {
			var ids []string
			for _, p := range available {
				ids = append(ids, p.PuzzleID)
			}
			return nil, fmt.Errorf("failed to load puzzle '%s': %v. Available puzzles: %v", puzzleName, err, ids)
		}
		return nil, fmt.Errorf("failed to load puzzle '%s': %w", puzzleName, err)
	}

	if err := s.engine.SetConfig(config); err != nil {
		return nil, fmt.Errorf("failed to switch puzzle: %w", err)
	}
	s.puzzleID = puzzleName
	s.restoreProgress()

	return s.engine.State(), nil
}

// Move draws one step of a path on the hosted board
func (s *gameServiceImpl) Move(ctx context.Context, prev, cur board.Pos) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.engine.Extend(prev, cur)
	state := s.engine.State()

	result := &MoveResult{
		Success:   err == nil,
		GameState: state,
		Message:   state.Message,
		Solved:    state.Solved,
	}

	if err != nil {
		result.Code = board.MoveErrorCode(err)
		result.Message = fmt.Sprintf("%s (%v)", state.Message, err)
		return result, nil
	}

	result.Events = append(result.Events, GameEvent{
		Type:      "draw",
		Message:   fmt.Sprintf("Drew %s at %s", state.Grid[cur.Row][cur.Col].Color, cur),
		Timestamp: time.Now(),
		Position:  cur,
	})
	if state.Solved {
		result.Events = append(result.Events, GameEvent{
			Type:      "solved",
			Message:   s.engine.GetConfig().Messages.Solved,
			Timestamp: time.Now(),
		})
	}

	s.saveProgress()
	return result, nil
}

// Erase removes a path from origin onward
func (s *gameServiceImpl) Erase(ctx context.Context, origin board.Pos) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Erase(origin)
	s.saveProgress()
	return s.engine.State(), nil
}

// Reset clears all paths on the hosted board
func (s *gameServiceImpl) Reset(ctx context.Context) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.Reset()
	if s.store != nil {
		if err := s.store.Clear(s.puzzleID); err != nil {
			fmt.Printf("Warning: Failed to clear saved progress for %s: %v\n", s.puzzleID, err)
		}
	}
	return state, nil
}

// ListPuzzles returns available puzzles
func (s *gameServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// GetPuzzle returns one puzzle definition without touching the hosted game
func (s *gameServiceImpl) GetPuzzle(ctx context.Context, puzzleName string) (*engine.PuzzleConfig, error) {
	return s.puzzles.LoadPuzzle(puzzleName)
}

// SavePuzzle validates and stores a puzzle definition
func (s *gameServiceImpl) SavePuzzle(ctx context.Context, config *engine.PuzzleConfig) error {
	if err := engine.ValidatePuzzleConfig(config); err != nil {
		return err
	}
	return s.puzzles.SavePuzzle(config.Name, config)
}

// saveProgress persists the current paths. Callers must hold s.mu.
func (s *gameServiceImpl) saveProgress() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.puzzleID, s.engine.Board().Paths()); err != nil {
		fmt.Printf("Warning: Failed to persist progress for %s: %v\n", s.puzzleID, err)
	}
}

// restoreProgress replays saved paths onto the current puzzle, if any exist.
// Callers must hold s.mu (or run before the service is shared).
func (s *gameServiceImpl) restoreProgress() {
	if s.store == nil {
		return
	}
	paths, ok, err := s.store.Load(s.puzzleID)
	if err != nil {
		fmt.Printf("Warning: Failed to load saved progress for %s: %v\n", s.puzzleID, err)
		return
	}
	if !ok {
		return
	}
	if err := s.engine.RestorePaths(paths); err != nil {
		fmt.Printf("Warning: Discarding unusable saved progress for %s: %v\n", s.puzzleID, err)
		if clearErr := s.store.Clear(s.puzzleID); clearErr != nil {
			fmt.Printf("Warning: Failed to clear saved progress for %s: %v\n", s.puzzleID, clearErr)
		}
	}
}
