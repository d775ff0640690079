package main

import (
	"os"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Flow Puzzle Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	originalPuzzleDir := *puzzleDir
	originalSavesDir := *savesDir
	*puzzleDir = "puzzles"
	*savesDir = t.TempDir()
	defer func() {
		*puzzleDir = originalPuzzleDir
		*savesDir = originalSavesDir
	}()

	if _, err := os.Stat("puzzles"); os.IsNotExist(err) {
		t.Skip("Skipping test - puzzles directory not found")
	}

	gameService, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_InvalidPuzzleDir(t *testing.T) {
	originalPuzzleDir := *puzzleDir
	originalSavesDir := *savesDir
	*puzzleDir = "/non/existent/path"
	*savesDir = t.TempDir()
	defer func() {
		*puzzleDir = originalPuzzleDir
		*savesDir = originalSavesDir
	}()

	_, err := initializeServices()
	if err == nil {
		t.Error("Expected error for non-existent puzzle directory")
	}
}

func TestFlagDefaults(t *testing.T) {
	// Test that flags have reasonable defaults
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *puzzleDir == "" {
		t.Error("Puzzle directory should have a default value")
	}

	if *savesDir == "" {
		t.Error("Saves directory should have a default value")
	}
}

// Note: We can't easily test main(), runHTTPServer(), and runStdioMCPWithInternalServer()
// without significant mocking or refactoring, as they start servers and block.
// These functions would be better tested in integration tests that start actual servers
// and test their endpoints.
