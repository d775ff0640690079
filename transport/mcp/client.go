package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
	"github.com/wricardo/mcp-training/flowpuzzle/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Flow Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Flow Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
The board holds pairs of colored endpoints. Draw one path per color joining
its two endpoints, step by step with the draw tool. The puzzle is solved when
every cell is covered and every pair is connected.

AVAILABLE TOOLS:
- list_puzzles: List available puzzles
- load_puzzle: Switch the board to another puzzle
- board_state: Get the current board
- draw: Extend a path by one cell - requires intent explanation
- erase_path: Erase a path from a cell onward
- reset_game: Clear the board
- check_solved: Run the win check with per-color progress
- describe_cell: Get detailed info about a specific cell
- game_instructions: Get comprehensive game rules

NOTE: The 'intent' parameter on the draw tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_puzzle",
		Description: "Switch the hosted board to another puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the puzzle to load (see list_puzzles)",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleLoadPuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw",
		Description: "Extend a path by one cell. from must be the current end of a path (an endpoint to start, or the last drawn cell), to must be 4-adjacent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"from_row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the current path end (0-based)",
				},
				"from_col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the current path end (0-based)",
				},
				"to_row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to draw onto (0-based)",
				},
				"to_col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to draw onto (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this step (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handleDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "erase_path",
		Description: "Erase a path from the given cell onward. Erasing from an endpoint removes that color's whole path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to erase from (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to erase from (0-based)",
				},
			},
			Required: []string{"row", "col"},
		},
	}, c.handleErasePath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Clear all paths and restore the initial board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_solved",
		Description: "Run the win check and report per-color progress",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCheckSolved)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific board cell: its color, whether it is an endpoint, and where its path continues.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based)",
				},
			},
			Required: []string{"row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 422 carries a full MoveResult body for rejected moves, so it is decoded
	// like a success.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnprocessableEntity {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var puzzles []service.PuzzleInfo
	err := c.apiCall("GET", "/api/puzzles", nil, &puzzles)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Puzzles (%d):\n\n", len(puzzles))
	for _, p := range puzzles {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Colors: %s\n\n",
			p.PuzzleID, p.Description, p.GridSize, p.GridSize, strings.Join(p.Colors, ", "))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLoadPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	puzzleID, _ := args["puzzle_id"].(string)

	var state engine.GameState
	err := c.apiCall("POST", "/api/game/load", map[string]string{"puzzle_id": puzzleID}, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Loaded puzzle: %s\n\n%s", state.PuzzleName, formatGameState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var state engine.GameState
	err := c.apiCall("GET", "/api/game/state", nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	fromRow, ok1 := args["from_row"].(float64)
	fromCol, ok2 := args["from_col"].(float64)
	toRow, ok3 := args["to_row"].(float64)
	toCol, ok4 := args["to_col"].(float64)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return mcp.NewToolResultError("from_row, from_col, to_row and to_col must be integers"), nil
	}
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"from": map[string]int{"row": int(fromRow), "col": int(fromCol)},
		"to":   map[string]int{"row": int(toRow), "col": int(toCol)},
	}

	var result service.MoveResult
	err := c.apiCall("POST", "/api/game/move", body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleErasePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	row, ok1 := args["row"].(float64)
	col, ok2 := args["col"].(float64)
	if !ok1 || !ok2 {
		return mcp.NewToolResultError("row and col must be integers"), nil
	}

	body := map[string]interface{}{
		"pos": map[string]int{"row": int(row), "col": int(col)},
	}

	var state engine.GameState
	err := c.apiCall("POST", "/api/game/erase", body, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Erased from (%d,%d)\n\n%s", int(row), int(col), formatGameState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", "/api/game/reset", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCheckSolved(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var result service.SolvedResult
	err := c.apiCall("GET", "/api/game/solved", nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := "✗ Not solved yet"
	if result.Solved {
		status = "🎉 SOLVED!"
	}

	response := fmt.Sprintf(`%s
Coverage: %d/%d cells
Connected: %s
Pending: %s
%s`,
		status,
		result.CoveredCells, result.TotalCells,
		orNone(result.ConnectedPairs),
		orNone(result.PendingPairs),
		result.Message)

	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	row, ok1 := args["row"].(float64)
	col, ok2 := args["col"].(float64)
	if !ok1 || !ok2 {
		return mcp.NewToolResultError("row and col must be integers"), nil
	}

	var info service.CellInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/game/cell/%d/%d", int(row), int(col)), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	kind := "empty cell"
	if info.Endpoint {
		kind = fmt.Sprintf("%s endpoint", info.Color)
	} else if info.Color != "" {
		kind = fmt.Sprintf("%s path cell", info.Color)
	}

	result := fmt.Sprintf("Cell (%d,%d): %s", int(row), int(col), kind)
	if info.Successor != nil {
		result += fmt.Sprintf("\nPath continues to (%d,%d)", info.Successor.Row, info.Successor.Col)
	} else if info.Color != "" {
		result += "\nThis cell is the end of its path"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Flow Puzzle - Complete Instructions

GAME OBJECTIVE:
Connect each pair of same-colored endpoints with a single path, covering every
cell of the board.

GAME MECHANICS:
• Draw one step at a time: from the current end of a path onto a 4-adjacent cell
• A path starts at an endpoint. Starting again from the paired endpoint discards
  the old path - a color has only one path at a time
• Drawing onto a cell covered by another path cuts that path from the covered
  cell onward. The overwritten color keeps the part closer to its origin
• A path may not end on the endpoint it started from
• Paths may not be drawn onto endpoints of a different color

BOARD DISPLAY:
• Uppercase letter - endpoint (first letter of its color)
• Lowercase letter - drawn path cell
• . - empty cell

DRAW RULES (most common rejections):
• not_adjacent: the two cells are not horizontal/vertical neighbors
• no_active_path: 'from' is an empty cell - start at an endpoint
• not_path_end: 'from' already has a next cell - draw from the path's tip
• color_mismatch: 'to' is an endpoint of a different color
• same_endpoint_loop: the path would end where it started

STRATEGY FOR AI AGENTS:
1. Get the board with board_state and note every endpoint position
2. Plan complete routes before drawing - every cell must be covered to win
3. Draw each color's path step by step from one endpoint to its pair
4. Use describe_cell when unsure what occupies a cell
5. Use erase_path to undo a bad route rather than drawing over it blindly
6. Use check_solved to see which colors are still disconnected

VICTORY CONDITIONS:
• Every cell of the board is covered by an endpoint or a drawn path
• Every color's two endpoints are joined by its path

Good luck connecting the flows! 🔵🔴`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No board state available"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Puzzle: %s | Grid: %dx%d | Moves: %d\n\n",
		state.PuzzleName, state.GridSize, state.GridSize, state.Moves))

	// Board
	for r := 0; r < len(state.Grid); r++ {
		for c := 0; c < len(state.Grid[r]); c++ {
			result.WriteString(cellChar(state.Grid[r][c]))
		}
		result.WriteString("\n")
	}

	if state.Solved {
		result.WriteString("\n🎉 SOLVED!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Step drawn\n"
	} else {
		response = fmt.Sprintf("✗ Step rejected (%s)\n", result.Code)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

// cellChar renders one cell: uppercase initial for endpoints, lowercase for
// path cells, '.' for empty.
func cellChar(cell engine.CellState) string {
	if cell.Color == "" {
		return "."
	}
	initial := cell.Color[:1]
	if cell.Endpoint {
		return strings.ToUpper(initial)
	}
	return strings.ToLower(initial)
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
