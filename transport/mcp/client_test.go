package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
	"github.com/wricardo/mcp-training/flowpuzzle/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"puzzle_name": "classic",
		"grid_size":   float64(5),
		"solved":      false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/game/state", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["puzzle_name"] != expectedResponse["puzzle_name"] {
		t.Errorf("Expected puzzle_name %v, got %v", expectedResponse["puzzle_name"], response["puzzle_name"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "puzzle not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/game/load", map[string]string{"puzzle_id": "nope"}, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	if !strings.Contains(err.Error(), "puzzle not found") {
		t.Errorf("Expected server error message, got: %v", err)
	}
}

func TestClient_apiCall_RejectedMoveBody(t *testing.T) {
	// 422 carries a MoveResult body and must be decoded, not treated as an error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(service.MoveResult{
			Success:   false,
			Code:      "not_adjacent",
			GameState: &engine.GameState{PuzzleName: "classic", GridSize: 5},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var result service.MoveResult
	err := client.apiCall("POST", "/api/game/move", map[string]string{}, &result)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if result.Success {
		t.Error("Expected rejected move")
	}
	if result.Code != "not_adjacent" {
		t.Errorf("Expected code not_adjacent, got %s", result.Code)
	}
}

func TestClient_handleDraw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/game/move" {
			t.Errorf("Expected POST /api/game/move, got %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			From board.Pos `json:"from"`
			To   board.Pos `json:"to"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.From != (board.Pos{Row: 0, Col: 0}) || req.To != (board.Pos{Row: 0, Col: 1}) {
			t.Errorf("Unexpected positions: from=%v to=%v", req.From, req.To)
		}

		resp := service.MoveResult{
			Success: true,
			GameState: &engine.GameState{
				PuzzleName: "classic",
				GridSize:   2,
				Grid: [][]engine.CellState{
					{{Color: "red", Endpoint: true}, {Color: "red"}},
					{{}, {}},
				},
				Moves: 1,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "draw",
			Arguments: map[string]interface{}{
				"from_row": float64(0),
				"from_col": float64(0),
				"to_row":   float64(0),
				"to_col":   float64(1),
				"intent":   "start the red path",
			},
		},
	}

	result, err := client.handleDraw(ctx, request)
	if err != nil {
		t.Fatalf("handleDraw failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "✓ Step drawn") {
		t.Errorf("Expected success marker in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Rr") {
		t.Errorf("Expected rendered board row 'Rr', got: %s", resultStr.Text)
	}
}

func TestClient_handleDraw_MissingArgs(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "draw",
			Arguments: map[string]interface{}{
				"from_row": float64(0),
			},
		},
	}

	result, err := client.handleDraw(ctx, request)
	if err != nil {
		t.Fatalf("handleDraw failed: %v", err)
	}

	if !result.IsError {
		t.Error("Expected error result for missing coordinates")
	}
}

func TestClient_handleListPuzzles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/puzzles" {
			t.Errorf("Expected GET /api/puzzles, got %s %s", r.Method, r.URL.Path)
		}

		resp := []service.PuzzleInfo{
			{PuzzleID: "classic", Name: "Classic", Description: "The classic 5x5 board", GridSize: 5, Colors: []string{"blue", "red"}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_puzzles",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListPuzzles(ctx, request)
	if err != nil {
		t.Fatalf("handleListPuzzles failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "classic") {
		t.Errorf("Expected puzzle ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "blue, red") {
		t.Errorf("Expected colors in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleCheckSolved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SolvedResult{
			Solved:         false,
			CoveredCells:   3,
			TotalCells:     4,
			ConnectedPairs: []string{"red"},
			PendingPairs:   []string{"blue"},
			Message:        "keep going",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "check_solved",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCheckSolved(ctx, request)
	if err != nil {
		t.Fatalf("handleCheckSolved failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedFields := []string{
		"✗ Not solved yet",
		"Coverage: 3/4 cells",
		"Connected: red",
		"Pending: blue",
	}
	for _, field := range expectedFields {
		if !strings.Contains(resultStr.Text, field) {
			t.Errorf("Expected field '%s' in result, got: %s", field, resultStr.Text)
		}
	}
}

func TestClient_handleDescribeCell(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/game/cell/1/2" {
			t.Errorf("Expected /api/game/cell/1/2, got %s", r.URL.Path)
		}

		resp := service.CellInfo{
			Pos:       board.Pos{Row: 1, Col: 2},
			Color:     "red",
			Endpoint:  false,
			Successor: &board.Pos{Row: 1, Col: 3},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_cell",
			Arguments: map[string]interface{}{
				"row": float64(1),
				"col": float64(2),
			},
		},
	}

	result, err := client.handleDescribeCell(ctx, request)
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "red path cell") {
		t.Errorf("Expected cell kind in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "continues to (1,3)") {
		t.Errorf("Expected successor in result, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	gameState := &engine.GameState{
		PuzzleName: "classic",
		GridSize:   2,
		Grid: [][]engine.CellState{
			{{Color: "red", Endpoint: true}, {Color: "blue", Endpoint: true}},
			{{Color: "red"}, {}},
		},
		Moves:   1,
		Message: "Welcome!",
	}

	result := formatGameState(gameState)

	expectedFields := []string{
		"Puzzle: classic",
		"Grid: 2x2",
		"Moves: 1",
		"RB",
		"r.",
		"Welcome!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_Solved(t *testing.T) {
	gameState := &engine.GameState{
		PuzzleName: "classic",
		GridSize:   2,
		Grid: [][]engine.CellState{
			{{Color: "red", Endpoint: true}, {Color: "blue", Endpoint: true}},
			{{Color: "red", Endpoint: true}, {Color: "blue", Endpoint: true}},
		},
		Solved:  true,
		Message: "Congratulations!",
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "🎉 SOLVED!") {
		t.Errorf("Expected '🎉 SOLVED!' in result, got: %s", result)
	}
}

func TestFormatMoveResult_Rejected(t *testing.T) {
	moveResult := &service.MoveResult{
		Success: false,
		Code:    "color_mismatch",
		GameState: &engine.GameState{
			PuzzleName: "classic",
			GridSize:   2,
			Grid: [][]engine.CellState{
				{{}, {}},
				{{}, {}},
			},
		},
	}

	result := formatMoveResult(moveResult)

	if !strings.Contains(result, "✗ Step rejected (color_mismatch)") {
		t.Errorf("Expected rejection marker with code, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Flow Puzzle - Complete Instructions",
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"BOARD DISPLAY:",
		"DRAW RULES",
		"STRATEGY FOR AI AGENTS:",
		"VICTORY CONDITIONS:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
