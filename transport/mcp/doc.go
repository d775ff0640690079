// Package mcp provides the Model Context Protocol interface of the Flow
// Puzzle server.
//
// The package is a thin client: every tool call is proxied to the REST API,
// so MCP agents and WebSocket watchers always see the same hosted game. The
// tool handlers render the JSON responses as plain text with an ASCII board
// (uppercase letters for endpoints, lowercase for drawn path cells, '.' for
// empty).
//
// MCP Tools:
//   - list_puzzles: List available puzzles
//   - load_puzzle: Switch the board to another puzzle
//   - board_state: Get the current board
//   - draw: Extend a path by one cell (with an intent explanation)
//   - erase_path: Erase a path from a cell onward
//   - reset_game: Clear the board
//   - check_solved: Win check with per-color progress
//   - describe_cell: Detailed info about one cell
//   - game_instructions: Full rules and strategy notes
//
// Rejected draw steps are not tool errors: the REST API answers 422 with the
// same MoveResult body a successful step returns, and the handler renders the
// machine code and the unchanged board so the agent can correct itself.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
