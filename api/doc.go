// Package api implements the REST interface of the Flow Puzzle server.
//
// Routes:
//
//	GET  /api/puzzles              - list available puzzles
//	POST /api/puzzles              - validate and store a puzzle definition
//	GET  /api/puzzles/{id}         - fetch one puzzle definition
//	GET  /api/game/state           - current board snapshot
//	POST /api/game/load            - switch the hosted game to another puzzle
//	POST /api/game/move            - draw one path step {"from":{...},"to":{...}}
//	POST /api/game/erase           - erase a path from a position onward
//	POST /api/game/reset           - clear the board
//	GET  /api/game/solved          - win check with per-color progress
//	GET  /api/game/cell/{row}/{col} - describe a single cell
//	GET  /api/health               - health check
//	     /ws                       - WebSocket board updates
//
// Rejected moves return 422 with the same MoveResult body a successful move
// returns, so clients always get the machine-readable code and the current
// board. Transport and infrastructure failures return 4xx/5xx with an
// {"error": ...} body.
//
// Every state-changing request is broadcast to the WebSocket hub so all
// connected watchers see the board move in real time.
package api
