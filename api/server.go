package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/flowpuzzle/game/board"
	"github.com/wricardo/mcp-training/flowpuzzle/game/engine"
	"github.com/wricardo/mcp-training/flowpuzzle/game/service"
	"github.com/wricardo/mcp-training/flowpuzzle/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Puzzles
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles", s.handleSavePuzzle).Methods("POST")
	api.HandleFunc("/puzzles/{id}", s.handleGetPuzzle).Methods("GET")

	// The hosted game
	api.HandleFunc("/game/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/game/load", s.handleLoadPuzzle).Methods("POST")
	api.HandleFunc("/game/move", s.handleMove).Methods("POST")
	api.HandleFunc("/game/erase", s.handleErase).Methods("POST")
	api.HandleFunc("/game/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/game/solved", s.handleCheckSolved).Methods("GET")
	api.HandleFunc("/game/cell/{row}/{col}", s.handleDescribeCell).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, puzzles)
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	config, err := s.service.GetPuzzle(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	var config engine.PuzzleConfig

	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.service.SavePuzzle(r.Context(), &config); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("Puzzle '%s' saved", config.Name),
	})
}

// Game Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleLoadPuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string `json:"puzzle_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PuzzleID == "" {
		respondError(w, http.StatusBadRequest, "puzzle_id is required")
		return
	}

	state, err := s.service.LoadPuzzle(r.Context(), req.PuzzleID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(state)
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From board.Pos `json:"from"`
		To   board.Pos `json:"to"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Move(r.Context(), req.From, req.To)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Compact server log for observability
	status := "OK"
	if !result.Success {
		status = result.Code
	}
	fmt.Printf("[MOVE] %s->%s status=%s moves=%d\n", req.From, req.To, status, result.GameState.Moves)

	if !result.Success {
		respondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(result.GameState)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleErase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pos board.Pos `json:"pos"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := s.service.Erase(r.Context(), req.Pos)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(state)
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.Reset(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(state)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Board reset successfully",
		"state":   state,
	})
}

func (s *Server) handleCheckSolved(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.CheckSolved(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDescribeCell(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "row must be an integer")
		return
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "col must be an integer")
		return
	}

	info, err := s.service.DescribeCell(r.Context(), board.Pos{Row: row, Col: col})
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not enabled", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
