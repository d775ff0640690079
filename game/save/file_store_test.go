package save

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
)

func testPaths() map[board.ColorID][]board.Pos {
	return map[board.ColorID][]board.Pos{
		"blue": {{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}},
		"red":  {{Row: 2, Col: 2}, {Row: 3, Col: 2}},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("classic", testPaths()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	paths, ok, err := store.Load("classic")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected save to exist")
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 colors, got %d", len(paths))
	}
	blue := paths["blue"]
	if len(blue) != 3 || blue[0] != (board.Pos{Row: 1, Col: 1}) || blue[2] != (board.Pos{Row: 1, Col: 3}) {
		t.Errorf("Unexpected blue path: %v", blue)
	}
}

func TestLoad_Missing(t *testing.T) {
	store := newTestStore(t)

	paths, ok, err := store.Load("nope")
	if err != nil {
		t.Fatalf("Load of missing save should not error: %v", err)
	}
	if ok || paths != nil {
		t.Errorf("Expected no save, got ok=%v paths=%v", ok, paths)
	}
}

func TestLoad_Corrupted(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.savesDir, "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Load("bad"); err == nil {
		t.Error("Expected error for corrupted save file")
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("classic", testPaths()); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear("classic"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Exists("classic") {
		t.Error("Expected save removed")
	}

	// Clearing again is a no-op
	if err := store.Clear("classic"); err != nil {
		t.Errorf("Clear of missing save should not error: %v", err)
	}
}

func TestListAll(t *testing.T) {
	store := newTestStore(t)

	if ids, err := store.ListAll(); err != nil || len(ids) != 0 {
		t.Fatalf("Expected empty store, got ids=%v err=%v", ids, err)
	}

	if err := store.Save("classic", testPaths()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("expert", testPaths()); err != nil {
		t.Fatal(err)
	}

	ids, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 saves, got %v", ids)
	}
}

func TestSave_EmptyID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("", testPaths()); err == nil {
		t.Error("Expected error for empty puzzle ID")
	}
}
