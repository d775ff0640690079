package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
	"github.com/wricardo/mcp-training/flowpuzzle/game/service"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// Manager handles puzzle definition loading and caching
type Manager struct {
	puzzleDir     string
	defaultPuzzle *engine.PuzzleConfig
	puzzles       map[string]*engine.PuzzleConfig
	mu            sync.RWMutex
}

// NewManager creates a new puzzle manager
func NewManager(puzzleDir string) (*Manager, error) {
	if _, err := os.Stat(puzzleDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", puzzleDir)
	}

	m := &Manager{
		puzzleDir: puzzleDir,
		puzzles:   make(map[string]*engine.PuzzleConfig),
	}

	if err := m.loadDefaultPuzzle(); err != nil {
		return nil, fmt.Errorf("failed to load default puzzle: %w", err)
	}

	return m, nil
}

// LoadPuzzle loads a puzzle definition by name
func (m *Manager) LoadPuzzle(name string) (*engine.PuzzleConfig, error) {
	m.mu.RLock()
	// Check cache first
	if puzzle, exists := m.puzzles[name]; exists {
		m.mu.RUnlock()
		return puzzle, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if puzzle, exists := m.puzzles[name]; exists {
		return puzzle, nil
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	puzzlePath := filepath.Join(m.puzzleDir, filename)

	data, err := os.ReadFile(puzzlePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	var puzzle engine.PuzzleConfig
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle: %w", err)
	}

	if err := engine.ValidatePuzzleConfig(&puzzle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	// Cache the puzzle
	m.puzzles[name] = &puzzle
	return &puzzle, nil
}

// ListPuzzles returns information about all available puzzles
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var puzzles []*service.PuzzleInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for puzzle name
		name := strings.TrimSuffix(entry.Name(), ".json")

		puzzle, err := m.LoadPuzzle(name)
		if err != nil {
			// Skip invalid puzzles
			continue
		}

		colors := make([]string, 0, len(puzzle.Legend))
		for _, color := range puzzle.Legend {
			colors = append(colors, color)
		}

		puzzles = append(puzzles, &service.PuzzleInfo{
			Filename:    entry.Name(),
			PuzzleID:    name,
			Name:        puzzle.Name,
			Description: puzzle.Description,
			GridSize:    puzzle.GridSize,
			Colors:      colors,
		})
	}

	return puzzles, nil
}

// GetDefault returns the default puzzle
func (m *Manager) GetDefault() *engine.PuzzleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPuzzle
}

// SetDefault sets the default puzzle by name
func (m *Manager) SetDefault(name string) error {
	puzzle, err := m.LoadPuzzle(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPuzzle = puzzle
	return nil
}

// RefreshCache reloads all cached puzzles from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.puzzles = make(map[string]*engine.PuzzleConfig)
	m.mu.Unlock()

	return m.loadDefaultPuzzle()
}

// loadDefaultPuzzle picks the default puzzle: classic.json if present, else the
// first loadable puzzle in the directory, else the built-in board. Must not be
// called with m.mu held; LoadPuzzle takes the lock itself.
func (m *Manager) loadDefaultPuzzle() error {
	puzzle, err := m.LoadPuzzle("classic")
	if err != nil {
		puzzle = nil
		if puzzles, listErr := m.ListPuzzles(); listErr == nil && len(puzzles) > 0 {
			puzzle, _ = m.LoadPuzzle(strings.TrimSuffix(puzzles[0].Filename, ".json"))
		}
		if puzzle == nil {
			puzzle = engine.DefaultPuzzleConfig()
		}
	}

	m.mu.Lock()
	m.defaultPuzzle = puzzle
	m.mu.Unlock()
	return nil
}

// SavePuzzle saves a puzzle definition to disk
func (m *Manager) SavePuzzle(name string, puzzle *engine.PuzzleConfig) error {
	if err := engine.ValidatePuzzleConfig(puzzle); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	puzzlePath := filepath.Join(m.puzzleDir, filename)

	data, err := json.MarshalIndent(puzzle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	if err := os.WriteFile(puzzlePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.puzzles[name] = puzzle
	m.mu.Unlock()

	return nil
}
