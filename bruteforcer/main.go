// Command bruteforcer solves the hosted Flow puzzle through the REST API.
// It fetches the board, searches for a full-coverage routing of every color
// pair, then replays the solution one draw call at a time.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	X int
	Y int
}

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type CellState struct {
	Color    string `json:"color,omitempty"`
	Endpoint bool   `json:"endpoint,omitempty"`
}

type GameState struct {
	PuzzleName string        `json:"puzzle_name"`
	GridSize   int           `json:"grid_size"`
	Grid       [][]CellState `json:"grid"`
	Solved     bool          `json:"solved"`
	Moves      int           `json:"moves"`
	Message    string        `json:"message"`
}

type MoveResult struct {
	Success   bool       `json:"success"`
	Code      string     `json:"code,omitempty"`
	GameState *GameState `json:"game_state"`
	Message   string     `json:"message,omitempty"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) GetState() (*GameState, error) {
	resp, err := c.client.Get(c.baseURL + "/api/game/state")
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state: status %d: %s", resp.StatusCode, body)
	}

	var state GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func (c *Client) LoadPuzzle(puzzleID string) error {
	reqBody, err := json.Marshal(map[string]string{"puzzle_id": puzzleID})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/game/load", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("load puzzle: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func (c *Client) Reset() error {
	resp, err := c.client.Post(c.baseURL+"/api/game/reset", "application/json", nil)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reset: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func (c *Client) Draw(from, to Position) (*MoveResult, error) {
	reqBody, err := json.Marshal(map[string]Pos{
		"from": {Row: from.Y, Col: from.X},
		"to":   {Row: to.Y, Col: to.X},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/game/move", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	defer resp.Body.Close()

	// 422 carries a MoveResult body for rejected steps
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("draw: status %d: %s", resp.StatusCode, body)
	}

	var result MoveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode move result: %w", err)
	}
	return &result, nil
}

// extractPairs pulls each color's two endpoints out of a state snapshot.
func extractPairs(state *GameState) []Pair {
	byColor := map[string][]Position{}
	order := []string{}

	for y, row := range state.Grid {
		for x, cell := range row {
			if cell.Endpoint {
				if _, seen := byColor[cell.Color]; !seen {
					order = append(order, cell.Color)
				}
				byColor[cell.Color] = append(byColor[cell.Color], Position{X: x, Y: y})
			}
		}
	}

	pairs := make([]Pair, 0, len(order))
	for _, color := range order {
		endpoints := byColor[color]
		if len(endpoints) != 2 {
			log.Printf("⚠️  Color %s has %d endpoints, skipping", color, len(endpoints))
			continue
		}
		pairs = append(pairs, Pair{Color: color, A: endpoints[0], B: endpoints[1]})
	}
	return pairs
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the puzzle server")
	puzzleID := flag.String("puzzle", "", "Puzzle to load before solving (default: whatever is hosted)")
	delay := flag.Duration("delay", 100*time.Millisecond, "Delay between draw calls")
	flag.Parse()

	client := NewClient(*baseURL)

	if *puzzleID != "" {
		log.Printf("Loading puzzle %s", *puzzleID)
		if err := client.LoadPuzzle(*puzzleID); err != nil {
			log.Fatalf("Failed to load puzzle: %v", err)
		}
	}

	if err := client.Reset(); err != nil {
		log.Fatalf("Failed to reset board: %v", err)
	}

	state, err := client.GetState()
	if err != nil {
		log.Fatalf("Failed to fetch board: %v", err)
	}

	log.Printf("🎮 Solving %s (%dx%d)", state.PuzzleName, state.GridSize, state.GridSize)

	pairs := extractPairs(state)
	if len(pairs) == 0 {
		log.Fatal("No endpoint pairs found on the board")
	}

	solver := NewSolver(state.GridSize, pairs)
	paths, ok := solver.Solve()
	if !ok {
		log.Fatal("❌ No full-coverage solution exists for this board")
	}

	// Replay the solution step by step
	steps := 0
	for i, path := range paths {
		log.Printf("✏️  Drawing %s (%d cells)", solver.pairs[i].Color, len(path))
		for j := 1; j < len(path); j++ {
			result, err := client.Draw(path[j-1], path[j])
			if err != nil {
				log.Fatalf("Draw failed: %v", err)
			}
			if !result.Success {
				log.Fatalf("Step rejected (%s): %s", result.Code, result.Message)
			}
			steps++
			time.Sleep(*delay)
		}
	}

	final, err := client.GetState()
	if err != nil {
		log.Fatalf("Failed to fetch final state: %v", err)
	}

	if final.Solved {
		log.Printf("🎉 Solved %s in %d steps", final.PuzzleName, steps)
	} else {
		log.Printf("⚠️  Replayed %d steps but board is not solved", steps)
		os.Exit(1)
	}
}
