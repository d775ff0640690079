package main

import "testing"

// checkSolution validates path adjacency, endpoint anchoring, disjointness,
// and full coverage.
func checkSolution(t *testing.T, size int, solver *Solver, paths [][]Position) {
	t.Helper()

	covered := map[Position]string{}
	for i, path := range paths {
		pair := solver.pairs[i]

		if len(path) < 2 {
			t.Fatalf("Path for %s too short: %v", pair.Color, path)
		}
		if path[0] != pair.A || path[len(path)-1] != pair.B {
			t.Errorf("Path for %s does not join its endpoints: %v", pair.Color, path)
		}

		for j, cell := range path {
			if j > 0 && manhattan(path[j-1], cell) != 1 {
				t.Errorf("Path for %s not 4-adjacent at step %d: %v", pair.Color, j, path)
			}
			if owner, taken := covered[cell]; taken {
				t.Errorf("Cell %v covered by both %s and %s", cell, owner, pair.Color)
			}
			covered[cell] = pair.Color
		}
	}

	if len(covered) != size*size {
		t.Errorf("Expected %d covered cells, got %d", size*size, len(covered))
	}
}

func TestSolve_TwoByTwo(t *testing.T) {
	pairs := []Pair{
		{Color: "red", A: Position{X: 0, Y: 0}, B: Position{X: 0, Y: 1}},
		{Color: "blue", A: Position{X: 1, Y: 0}, B: Position{X: 1, Y: 1}},
	}

	solver := NewSolver(2, pairs)
	paths, ok := solver.Solve()
	if !ok {
		t.Fatal("Expected 2x2 board to be solvable")
	}

	checkSolution(t, 2, solver, paths)
}

func TestSolve_Classic(t *testing.T) {
	// The shipped classic board
	pairs := []Pair{
		{Color: "red", A: Position{X: 0, Y: 0}, B: Position{X: 2, Y: 2}},
		{Color: "blue", A: Position{X: 3, Y: 1}, B: Position{X: 3, Y: 4}},
	}

	solver := NewSolver(5, pairs)
	paths, ok := solver.Solve()
	if !ok {
		t.Fatal("Expected classic board to be solvable")
	}

	checkSolution(t, 5, solver, paths)
}

func TestSolve_ParityUnsolvable(t *testing.T) {
	// 3x3 with two corner-to-corner pairs along the edges: minimum coverage
	// is 6 cells, leaving odd slack, so full coverage is impossible.
	pairs := []Pair{
		{Color: "red", A: Position{X: 0, Y: 0}, B: Position{X: 2, Y: 0}},
		{Color: "blue", A: Position{X: 0, Y: 2}, B: Position{X: 2, Y: 2}},
	}

	solver := NewSolver(3, pairs)
	if _, ok := solver.Solve(); ok {
		t.Fatal("Expected no full-coverage solution")
	}
}

func TestExtractPairs(t *testing.T) {
	state := &GameState{
		GridSize: 2,
		Grid: [][]CellState{
			{{Color: "red", Endpoint: true}, {Color: "blue", Endpoint: true}},
			{{Color: "red", Endpoint: true}, {Color: "blue", Endpoint: true}},
		},
	}

	pairs := extractPairs(state)
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}

	if pairs[0].Color != "red" || pairs[1].Color != "blue" {
		t.Errorf("Unexpected pair order: %v", pairs)
	}
	if pairs[0].A != (Position{X: 0, Y: 0}) || pairs[0].B != (Position{X: 0, Y: 1}) {
		t.Errorf("Unexpected red endpoints: %+v", pairs[0])
	}
}
