package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 64
	headerHeight = 60
	footerHeight = 30
	screenWidth  = 800
	screenHeight = 720
	baseURL      = "http://localhost:8080"
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenGame
)

// Named path colors; unknown color names fall back to a hash-derived hue
var namedColors = map[string]color.RGBA{
	"red":     {220, 60, 60, 255},
	"blue":    {70, 110, 230, 255},
	"green":   {70, 190, 90, 255},
	"yellow":  {230, 210, 70, 255},
	"orange":  {240, 150, 50, 255},
	"purple":  {160, 80, 200, 255},
	"cyan":    {80, 200, 210, 255},
	"magenta": {220, 80, 200, 255},
	"pink":    {250, 160, 190, 255},
}

// Pos mirrors a board position in server JSON
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellState mirrors one grid cell in a state snapshot
type CellState struct {
	Color    string `json:"color,omitempty"`
	Endpoint bool   `json:"endpoint,omitempty"`
}

// GameState represents the state from the puzzle server
type GameState struct {
	PuzzleName string        `json:"puzzle_name"`
	GridSize   int           `json:"grid_size"`
	Grid       [][]CellState `json:"grid"`
	Solved     bool          `json:"solved"`
	Moves      int           `json:"moves"`
	Message    string        `json:"message"`
}

// WSMessage represents the WebSocket message wrapper
type WSMessage struct {
	Event     string      `json:"event"`
	GameState *GameState  `json:"game_state,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// PuzzleListItem represents a puzzle from the server
type PuzzleListItem struct {
	PuzzleID    string `json:"puzzle_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
}

// MoveResult mirrors the server's response to a draw step
type MoveResult struct {
	Success   bool       `json:"success"`
	Code      string     `json:"code,omitempty"`
	GameState *GameState `json:"game_state"`
}

// Game is the desktop puzzle client
type Game struct {
	state      *GameState
	stateMutex sync.RWMutex
	wsConn     *websocket.Conn
	lastUpdate time.Time

	currentScreen ScreenType
	welcomeScreen *WelcomeScreen

	// Drag drawing: dragCell is the last cell the held pointer drew onto
	dragging bool
	dragCell Pos

	rejection     string
	rejectionTime time.Time
}

// WelcomeScreen manages the puzzle selection screen
type WelcomeScreen struct {
	availablePuzzles []PuzzleListItem
	cursorPos        int
	loading          bool
	errorMsg         string
}

// NewGame creates the client and connects to the server
func NewGame() *Game {
	g := &Game{
		currentScreen: ScreenWelcome,
		welcomeScreen: &WelcomeScreen{},
	}

	g.loadWelcomeData()

	if err := g.connectWebSocket(); err != nil {
		log.Printf("Failed to connect WebSocket: %v (falling back to polling)", err)
	} else {
		go g.listenWebSocket()
	}

	g.fetchGameState()
	return g
}

// connectWebSocket establishes the board-update connection
func (g *Game) connectWebSocket() error {
	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	g.wsConn = conn
	log.Printf("WebSocket connected")
	return nil
}

// listenWebSocket applies board updates pushed by the server
func (g *Game) listenWebSocket() {
	defer func() {
		if g.wsConn != nil {
			g.wsConn.Close()
		}
	}()

	for {
		_, message, err := g.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			return
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}

		if wsMsg.GameState == nil {
			continue
		}

		g.stateMutex.Lock()
		g.state = wsMsg.GameState
		g.lastUpdate = time.Now()
		g.stateMutex.Unlock()
	}
}

// fetchGameState gets the current board from the server
func (g *Game) fetchGameState() error {
	resp, err := http.Get(baseURL + "/api/game/state")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var state GameState
	if err := json.Unmarshal(body, &state); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	g.state = &state
	g.lastUpdate = time.Now()
	g.stateMutex.Unlock()

	return nil
}

// loadWelcomeData fetches the puzzle list from the server
func (g *Game) loadWelcomeData() {
	g.welcomeScreen.loading = true
	g.welcomeScreen.errorMsg = ""

	resp, err := http.Get(baseURL + "/api/puzzles")
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading puzzles: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var puzzles []PuzzleListItem
	if err := json.Unmarshal(body, &puzzles); err == nil {
		g.welcomeScreen.availablePuzzles = puzzles
	}

	g.welcomeScreen.loading = false
}

// loadPuzzle switches the hosted game to the selected puzzle
func (g *Game) loadPuzzle(puzzleID string) error {
	payload := fmt.Sprintf(`{"puzzle_id":%q}`, puzzleID)
	resp, err := http.Post(baseURL+"/api/game/load", "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("load failed: %s", body)
	}

	return g.fetchGameState()
}

// sendDraw posts one path step. Rejected steps surface their machine code in
// the footer instead of failing.
func (g *Game) sendDraw(from, to Pos) {
	reqBody, _ := json.Marshal(map[string]Pos{"from": from, "to": to})
	resp, err := http.Post(baseURL+"/api/game/move", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		log.Printf("Draw failed: %v", err)
		return
	}
	defer resp.Body.Close()

	var result MoveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Draw decode failed: %v", err)
		return
	}

	g.stateMutex.Lock()
	if result.GameState != nil {
		g.state = result.GameState
		g.lastUpdate = time.Now()
	}
	if result.Success {
		g.dragCell = to
	} else {
		g.rejection = result.Code
		g.rejectionTime = time.Now()
	}
	g.stateMutex.Unlock()
}

// sendErase erases the path from a cell onward
func (g *Game) sendErase(pos Pos) {
	reqBody, _ := json.Marshal(map[string]Pos{"pos": pos})
	resp, err := http.Post(baseURL+"/api/game/erase", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		log.Printf("Erase failed: %v", err)
		return
	}
	resp.Body.Close()
	g.fetchGameState()
}

// sendReset clears the board
func (g *Game) sendReset() {
	resp, err := http.Post(baseURL+"/api/game/reset", "application/json", nil)
	if err != nil {
		log.Printf("Reset failed: %v", err)
		return
	}
	resp.Body.Close()
	g.fetchGameState()
}

// Update updates game logic
func (g *Game) Update() error {
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenGame:
		return g.updateGameScreen()
	}
	return nil
}

// updateWelcomeScreen handles puzzle selection input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	total := len(ws.availablePuzzles)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ws.cursorPos < total-1 {
		ws.cursorPos++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ws.cursorPos > 0 {
		ws.cursorPos--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ws.cursorPos < total {
		puzzleID := ws.availablePuzzles[ws.cursorPos].PuzzleID
		if err := g.loadPuzzle(puzzleID); err != nil {
			ws.errorMsg = fmt.Sprintf("Failed to load puzzle: %v", err)
		} else {
			g.currentScreen = ScreenGame
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.state != nil {
		g.currentScreen = ScreenGame
	}

	return nil
}

// updateGameScreen handles drawing input
func (g *Game) updateGameScreen() error {
	// Poll if WebSocket is not connected
	if g.wsConn == nil {
		g.stateMutex.RLock()
		stale := g.state == nil || time.Since(g.lastUpdate) > 500*time.Millisecond
		g.stateMutex.RUnlock()
		if stale {
			if err := g.fetchGameState(); err != nil {
				log.Printf("Error fetching state: %v", err)
			}
		}
	}

	// Drag drawing: press starts at a cell, every adjacent cell the held
	// pointer enters becomes one draw step
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if cell, ok := g.cellAtCursor(); ok {
			g.dragging = true
			g.dragCell = cell
		}
	}
	if g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if cell, ok := g.cellAtCursor(); ok && cell != g.dragCell {
			if isAdjacent(cell, g.dragCell) {
				g.sendDraw(g.dragCell, cell)
			}
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	// Right click erases from the cell under the cursor
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if cell, ok := g.cellAtCursor(); ok {
			g.sendErase(cell)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sendReset()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
	}

	return nil
}

// cellAtCursor maps the mouse position to a board cell
func (g *Game) cellAtCursor() (Pos, bool) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if g.state == nil {
		return Pos{}, false
	}

	x, y := ebiten.CursorPosition()
	col := x / cellSize
	row := (y - headerHeight) / cellSize

	if y < headerHeight || row < 0 || col < 0 || row >= g.state.GridSize || col >= g.state.GridSize {
		return Pos{}, false
	}
	return Pos{Row: row, Col: col}, true
}

func isAdjacent(a, b Pos) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Draw renders the client
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenGame:
		g.drawGameScreen(screen)
	}
}

// drawWelcomeScreen renders the puzzle selection screen
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	ws := g.welcomeScreen

	screen.Fill(color.RGBA{20, 20, 30, 255})

	y := 20
	ebitenutil.DebugPrintAt(screen, "=== FLOW PUZZLE - SELECT A PUZZLE ===", 250, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading puzzles...", 20, y)
		return
	}

	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 20
	}

	ebitenutil.DebugPrintAt(screen, "Available Puzzles:", 20, y)
	y += 20

	if len(ws.availablePuzzles) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No puzzles found. Is the server running?", 20, y)
		y += 20
	} else {
		for i, puzzle := range ws.availablePuzzles {
			cursor := "  "
			if i == ws.cursorPos {
				cursor = "> "
			}

			line := fmt.Sprintf("%s%s (%dx%d) - %s",
				cursor, puzzle.PuzzleID, puzzle.GridSize, puzzle.GridSize, puzzle.Description)
			ebitenutil.DebugPrintAt(screen, line, 20, y)
			y += 15
		}
	}

	y += 25
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 20
	ebitenutil.DebugPrintAt(screen, "  Up/Down  - Navigate puzzles", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER    - Load selected puzzle", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5       - Refresh puzzle list", 20, y)
	y += 15
	if g.state != nil {
		ebitenutil.DebugPrintAt(screen, "  ESC      - Back to board", 20, y)
	}
}

// drawGameScreen renders the board
func (g *Game) drawGameScreen(screen *ebiten.Image) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	screen.Fill(color.RGBA{20, 20, 30, 255})

	if g.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	// Header
	header := fmt.Sprintf("%s | %dx%d | Moves: %d",
		g.state.PuzzleName, g.state.GridSize, g.state.GridSize, g.state.Moves)
	if g.state.Solved {
		header += " | SOLVED!"
	}
	ebitenutil.DebugPrintAt(screen, header, 10, 10)
	if g.state.Message != "" {
		ebitenutil.DebugPrintAt(screen, g.state.Message, 10, 28)
	}

	// Board
	for row := 0; row < len(g.state.Grid); row++ {
		for col := 0; col < len(g.state.Grid[row]); col++ {
			cell := g.state.Grid[row][col]
			x := float64(col * cellSize)
			y := float64(row*cellSize + headerHeight)

			// Cell background
			ebitenutil.DrawRect(screen, x, y, cellSize-2, cellSize-2, color.RGBA{45, 45, 55, 255})

			if cell.Color == "" {
				continue
			}

			c := pathColor(cell.Color)
			if cell.Endpoint {
				// Endpoints are large filled blocks
				ebitenutil.DrawRect(screen, x+6, y+6, cellSize-14, cellSize-14, c)
			} else {
				// Path cells are slimmer, slightly translucent
				c.A = 200
				ebitenutil.DrawRect(screen, x+16, y+16, cellSize-34, cellSize-34, c)
			}
		}
	}

	// Recent rejection in the footer, fades after two seconds
	footer := "Drag: draw | Right click: erase | R: reset | ESC: puzzle menu"
	if g.rejection != "" && time.Since(g.rejectionTime) < 2*time.Second {
		footer = fmt.Sprintf("Rejected: %s | %s", g.rejection, footer)
	}
	ebitenutil.DebugPrintAt(screen, footer, 10, screenHeight-20)
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// pathColor maps a color name to a render color
func pathColor(name string) color.RGBA {
	if c, ok := namedColors[name]; ok {
		return c
	}

	// Unknown color names get a stable hash-derived color
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()
	return color.RGBA{
		R: uint8(80 + v%150),
		G: uint8(80 + (v>>8)%150),
		B: uint8(80 + (v>>16)%150),
		A: 255,
	}
}

func main() {
	game := NewGame()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Flow Puzzle - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
