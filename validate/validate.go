// Command validate provides a small CLI that validates puzzle JSON files in
// the ../puzzles directory. It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed characters ('.' and A-Z)
//   - Each endpoint letter appearing exactly twice
//   - Legend coverage (every letter named, no unused or duplicate colors)
//   - Required message keys
//   - Reachability: each pair of endpoints can be joined by a 4-adjacent path
//     that avoids the endpoints of other colors
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Puzzle mirrors the JSON schema for a puzzle file.
type Puzzle struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend"`
	Messages    map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePuzzle loads and validates a single puzzle JSON file. It performs
// structural checks, grid/legend validation, message presence, and a
// reachability pass over the endpoint pairs.
func validatePuzzle(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var puzzle Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if puzzle.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Name is required")
	}

	// Validate grid
	if len(puzzle.Layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
	}

	if puzzle.GridSize > 0 && len(puzzle.Layout) != puzzle.GridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d rows, expected grid_size %d", len(puzzle.Layout), puzzle.GridSize))
	}

	letterCounts := map[rune]int{}
	for i, row := range puzzle.Layout {
		if len(row) != puzzle.GridSize {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, puzzle.GridSize, len(row)))
		}

		for j, char := range row {
			switch {
			case char == '.':
			case char >= 'A' && char <= 'Z':
				letterCounts[char]++
			default:
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
		}
	}

	// Every endpoint letter appears exactly twice
	if len(letterCounts) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 endpoint pair")
	}
	for letter, count := range letterCounts {
		if count != 2 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Endpoint letter '%c' appears %d times, expected exactly 2", letter, count))
		}
	}

	// Validate legend
	seenColors := map[string]string{}
	for letter := range letterCounts {
		color, ok := puzzle.Legend[string(letter)]
		if !ok || color == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend missing entry for letter '%c'", letter))
			continue
		}
		if prev, dup := seenColors[color]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend color %q used by both '%s' and '%c'", color, prev, letter))
		}
		seenColors[color] = string(letter)
	}
	for key := range puzzle.Legend {
		if len(key) != 1 || letterCounts[rune(key[0])] == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend entry %q does not match any layout letter", key))
		}
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"solved",
		"invalid_move",
	}
	for _, msg := range requiredMessages {
		if _, exists := puzzle.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Reachability validation - check that each pair can be joined at all
	if result.Valid {
		reachabilityResult := validateReachability(puzzle.Layout)
		if !reachabilityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachabilityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", puzzle.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", puzzle.GridSize, puzzle.GridSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Colors: %d", len(letterCounts)))
	}

	return result
}

// validateReachability checks that each endpoint pair can be connected using
// 4-directional movement over cells that are not endpoints of another color.
// This is a necessary condition for solvability, not a full solver.
func validateReachability(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate reachability: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	// Collect both endpoints of each letter
	endpoints := map[rune][][]int{}
	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			cell := rune(layout[y][x])
			if cell >= 'A' && cell <= 'Z' {
				endpoints[cell] = append(endpoints[cell], []int{x, y})
			}
		}
	}

	unreachable := []string{}
	for letter, pair := range endpoints {
		if len(pair) != 2 {
			continue
		}

		// Flood fill from the first endpoint, treating other letters as walls
		isPassable := func(x, y int) bool {
			if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
				return false
			}
			cell := rune(layout[y][x])
			return cell == '.' || cell == letter
		}

		visited := make(map[string]bool)
		queue := [][]int{pair[0]}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			x, y := current[0], current[1]
			key := fmt.Sprintf("%d,%d", x, y)
			if visited[key] {
				continue
			}
			visited[key] = true

			directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
			for _, dir := range directions {
				nx, ny := x+dir[0], y+dir[1]
				nkey := fmt.Sprintf("%d,%d", nx, ny)
				if !visited[nkey] && isPassable(nx, ny) {
					queue = append(queue, []int{nx, ny})
				}
			}
		}

		key := fmt.Sprintf("%d,%d", pair[1][0], pair[1][1])
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("'%c' pair at (%d,%d) and (%d,%d)", letter, pair[0][0], pair[0][1], pair[1][0], pair[1][1]))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: %d pairs cannot be connected", len(unreachable)))
		for _, pair := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unconnectable: %s", pair))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: All %d pairs can be connected", len(endpoints)))
	}

	return result
}

// main scans ../puzzles for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	puzzleDir := "../puzzles"
	files, err := filepath.Glob(filepath.Join(puzzleDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePuzzle(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All puzzles are valid!")
	} else {
		fmt.Println("❌ Some puzzles have errors")
		os.Exit(1)
	}
}
