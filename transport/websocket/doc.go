// Package websocket pushes live board updates to connected watchers.
//
// The hub keeps one set of clients, all watching the single hosted game. The
// REST API calls Broadcast after every state-changing operation, and every
// watcher receives the new board snapshot as a "state_update" message.
// Watchers are read-only: moves go through the REST API or MCP, never over
// the socket.
//
// Connection lifecycle follows the standard gorilla/websocket hub pattern:
// one read pump and one write pump per client, ping/pong keepalives, and
// clients with a full send buffer are dropped rather than blocking the hub.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// in an HTTP handler
//	hub.ServeWS(w, r)
//
//	// after a move
//	hub.Broadcast(state)
package websocket
