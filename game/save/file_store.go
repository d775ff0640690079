package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
)

// PersistedProgress is the JSON structure written to disk for one puzzle
type PersistedProgress struct {
	PuzzleID string                        `json:"puzzle_id"`
	SavedAt  time.Time                     `json:"saved_at"`
	Paths    map[board.ColorID][]board.Pos `json:"paths"`
}

// FileStore persists drawn paths as JSON files, one per puzzle. It satisfies
// the service.ProgressStore interface.
type FileStore struct {
	savesDir string
}

// NewFileStore creates a file-based progress store
func NewFileStore(savesDir string) (*FileStore, error) {
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create saves directory: %w", err)
	}

	return &FileStore{savesDir: savesDir}, nil
}

// Save persists the current paths for a puzzle
func (fs *FileStore) Save(puzzleID string, paths map[board.ColorID][]board.Pos) error {
	if puzzleID == "" {
		return fmt.Errorf("puzzle ID cannot be empty")
	}

	data := PersistedProgress{
		PuzzleID: puzzleID,
		SavedAt:  time.Now(),
		Paths:    paths,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := os.WriteFile(fs.getFilePath(puzzleID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	return nil
}

// Load retrieves saved paths for a puzzle. The second return value reports
// whether a save existed.
func (fs *FileStore) Load(puzzleID string) (map[board.ColorID][]board.Pos, bool, error) {
	filePath := fs.getFilePath(puzzleID)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, false, nil
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read save file: %w", err)
	}

	var data PersistedProgress
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	return data.Paths, true, nil
}

// Clear removes the save for a puzzle. Clearing a puzzle with no save is a
// no-op.
func (fs *FileStore) Clear(puzzleID string) error {
	err := os.Remove(fs.getFilePath(puzzleID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove save file: %w", err)
	}
	return nil
}

// ListAll returns the puzzle IDs that have saved progress
func (fs *FileStore) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fs.savesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read saves directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".json" {
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}

	return ids, nil
}

// Exists checks whether a save exists for a puzzle
func (fs *FileStore) Exists(puzzleID string) bool {
	_, err := os.Stat(fs.getFilePath(puzzleID))
	return err == nil
}

// getFilePath returns the full file path for a puzzle's save
func (fs *FileStore) getFilePath(puzzleID string) string {
	return filepath.Join(fs.savesDir, fmt.Sprintf("%s.json", puzzleID))
}
