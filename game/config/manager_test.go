package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
)

func testPuzzle(name string) *engine.PuzzleConfig {
	config := &engine.PuzzleConfig{
		Name:        name,
		Description: "Test puzzle " + name,
		GridSize:    5,
		Layout: []string{
			"R....",
			".B...",
			"..R..",
			"...B.",
			".....",
		},
		Legend: map[string]string{
			"R": "red",
			"B": "blue",
		},
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.Solved = "Solved!"
	config.Messages.InvalidMove = "Can't draw there!"
	return config
}

func writePuzzle(t *testing.T, dir, filename string, puzzle *engine.PuzzleConfig) {
	t.Helper()
	data, err := json.MarshalIndent(puzzle, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal puzzle: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write puzzle file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "classic.json", testPuzzle("classic"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Name != "classic" {
		t.Errorf("Expected classic as default, got %+v", def)
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestNewManager_EmptyDirUsesBuiltIn(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	def := manager.GetDefault()
	if def == nil {
		t.Fatal("Expected built-in default puzzle")
	}
	if err := engine.ValidatePuzzleConfig(def); err != nil {
		t.Errorf("Built-in default should be valid: %v", err)
	}
}

func TestLoadPuzzle(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "expert.json", testPuzzle("Expert"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	puzzle, err := manager.LoadPuzzle("expert")
	if err != nil {
		t.Fatalf("LoadPuzzle failed: %v", err)
	}
	if puzzle.Name != "Expert" {
		t.Errorf("Expected name 'Expert', got %q", puzzle.Name)
	}

	// Second load comes from cache and must be the same instance
	again, err := manager.LoadPuzzle("expert")
	if err != nil {
		t.Fatal(err)
	}
	if again != puzzle {
		t.Error("Expected cached puzzle on second load")
	}
}

func TestLoadPuzzle_NotFound(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = manager.LoadPuzzle("missing")
	if !errors.Is(err, ErrPuzzleNotFound) {
		t.Errorf("Expected ErrPuzzleNotFound, got: %v", err)
	}
}

func TestLoadPuzzle_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := testPuzzle("bad")
	bad.Layout[0] = "....."
	writePuzzle(t, dir, "bad.json", bad)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = manager.LoadPuzzle("bad")
	if !errors.Is(err, ErrInvalidPuzzle) {
		t.Errorf("Expected ErrInvalidPuzzle, got: %v", err)
	}
}

func TestListPuzzles(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "classic.json", testPuzzle("classic"))
	writePuzzle(t, dir, "expert.json", testPuzzle("Expert"))

	// Invalid puzzles are skipped, not fatal
	bad := testPuzzle("bad")
	bad.GridSize = 0
	writePuzzle(t, dir, "bad.json", bad)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a puzzle"), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	puzzles, err := manager.ListPuzzles()
	if err != nil {
		t.Fatalf("ListPuzzles failed: %v", err)
	}
	if len(puzzles) != 2 {
		t.Fatalf("Expected 2 puzzles, got %d", len(puzzles))
	}

	byID := make(map[string]bool)
	for _, p := range puzzles {
		byID[p.PuzzleID] = true
		if p.GridSize != 5 {
			t.Errorf("Expected grid size 5 for %s, got %d", p.PuzzleID, p.GridSize)
		}
		if len(p.Colors) != 2 {
			t.Errorf("Expected 2 colors for %s, got %v", p.PuzzleID, p.Colors)
		}
	}
	if !byID["classic"] || !byID["expert"] {
		t.Errorf("Expected classic and expert, got %v", byID)
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "classic.json", testPuzzle("classic"))
	writePuzzle(t, dir, "expert.json", testPuzzle("Expert"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.SetDefault("expert"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Expert" {
		t.Errorf("Expected 'Expert' as default, got %q", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error for unknown puzzle")
	}
}

func TestSavePuzzle(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.SavePuzzle("fresh", testPuzzle("Fresh")); err != nil {
		t.Fatalf("SavePuzzle failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "fresh.json")); err != nil {
		t.Errorf("Expected puzzle file on disk: %v", err)
	}

	loaded, err := manager.LoadPuzzle("fresh")
	if err != nil {
		t.Fatalf("LoadPuzzle after save failed: %v", err)
	}
	if loaded.Name != "Fresh" {
		t.Errorf("Expected 'Fresh', got %q", loaded.Name)
	}
}

func TestSavePuzzle_Invalid(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	bad := testPuzzle("bad")
	bad.Name = ""
	if !errors.Is(manager.SavePuzzle("bad", bad), ErrInvalidPuzzle) {
		t.Error("Expected ErrInvalidPuzzle")
	}
}

func TestRefreshCache(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "classic.json", testPuzzle("classic"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := manager.LoadPuzzle("classic")
	if err != nil {
		t.Fatal(err)
	}

	// Change the file on disk, refresh, and confirm the cache was dropped
	updated := testPuzzle("classic")
	updated.Description = "Updated description"
	writePuzzle(t, dir, "classic.json", updated)

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	second, err := manager.LoadPuzzle("classic")
	if err != nil {
		t.Fatal(err)
	}
	if second == first {
		t.Error("Expected fresh instance after refresh")
	}
	if second.Description != "Updated description" {
		t.Errorf("Expected updated description, got %q", second.Description)
	}
}
