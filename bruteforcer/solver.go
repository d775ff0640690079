package main

import (
	"log"
	"sort"
)

// Pair is one color's two endpoints.
type Pair struct {
	Color string
	A, B  Position
}

// Solver finds one set of disjoint paths that joins every pair and covers
// every cell, by depth-first search with dead-region pruning.
type Solver struct {
	size  int
	pairs []Pair
	grid  [][]int // color index per cell, -1 empty
	paths [][]Position
	nodes int
}

func NewSolver(size int, pairs []Pair) *Solver {
	s := &Solver{
		size:  size,
		pairs: make([]Pair, len(pairs)),
		grid:  make([][]int, size),
		paths: make([][]Position, len(pairs)),
	}
	copy(s.pairs, pairs)

	// Longest Manhattan distance first: constrained colors prune earlier
	sort.SliceStable(s.pairs, func(i, j int) bool {
		return manhattan(s.pairs[i].A, s.pairs[i].B) > manhattan(s.pairs[j].A, s.pairs[j].B)
	})

	for y := range s.grid {
		s.grid[y] = make([]int, size)
		for x := range s.grid[y] {
			s.grid[y][x] = -1
		}
	}
	for i, pair := range s.pairs {
		s.grid[pair.A.Y][pair.A.X] = i
		s.grid[pair.B.Y][pair.B.X] = i
	}

	return s
}

// Solve returns the paths in pair order, each starting at A and ending at B.
func (s *Solver) Solve() ([][]Position, bool) {
	if len(s.pairs) == 0 {
		return nil, false
	}

	start := s.pairs[0].A
	s.paths[0] = []Position{start}
	ok := s.extend(0, start)

	log.Printf("🔍 Solver explored %d positions", s.nodes)
	if !ok {
		return nil, false
	}
	return s.paths, true
}

func (s *Solver) extend(ci int, cur Position) bool {
	s.nodes++

	target := s.pairs[ci].B
	for _, next := range neighbors(cur, s.size) {
		if next == target {
			if s.advanceColor(ci) {
				return true
			}
			continue
		}
		if s.grid[next.Y][next.X] != -1 {
			continue
		}

		s.grid[next.Y][next.X] = ci
		s.paths[ci] = append(s.paths[ci], next)

		if s.regionsAlive(ci, next) && s.extend(ci, next) {
			return true
		}

		s.paths[ci] = s.paths[ci][:len(s.paths[ci])-1]
		s.grid[next.Y][next.X] = -1
	}

	return false
}

// advanceColor closes color ci at its target and recurses into the next color.
func (s *Solver) advanceColor(ci int) bool {
	s.paths[ci] = append(s.paths[ci], s.pairs[ci].B)

	if ci == len(s.pairs)-1 {
		if s.fullyCovered() {
			return true
		}
	} else {
		next := s.pairs[ci+1].A
		s.paths[ci+1] = []Position{next}
		if s.extend(ci+1, next) {
			return true
		}
		s.paths[ci+1] = nil
	}

	s.paths[ci] = s.paths[ci][:len(s.paths[ci])-1]
	return false
}

func (s *Solver) fullyCovered() bool {
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if s.grid[y][x] == -1 {
				return false
			}
		}
	}
	return true
}

// regionsAlive checks that every empty region still touches something that can
// grow into it: the active head of color ci, ci's target, or an endpoint of a
// color not yet routed. A walled-off empty region can never be covered, so the
// whole branch is dead.
func (s *Solver) regionsAlive(ci int, head Position) bool {
	seen := make([][]bool, s.size)
	for y := range seen {
		seen[y] = make([]bool, s.size)
	}

	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if s.grid[y][x] != -1 || seen[y][x] {
				continue
			}

			// Flood fill this empty region
			alive := false
			queue := []Position{{X: x, Y: y}}
			seen[y][x] = true
			for len(queue) > 0 {
				cell := queue[0]
				queue = queue[1:]

				for _, n := range neighbors(cell, s.size) {
					owner := s.grid[n.Y][n.X]
					if owner == -1 {
						if !seen[n.Y][n.X] {
							seen[n.Y][n.X] = true
							queue = append(queue, n)
						}
						continue
					}
					if n == head || n == s.pairs[ci].B {
						alive = true
					} else if owner > ci && (n == s.pairs[owner].A || n == s.pairs[owner].B) {
						alive = true
					}
				}
			}

			if !alive {
				return false
			}
		}
	}

	return true
}

func neighbors(p Position, size int) []Position {
	out := make([]Position, 0, 4)
	for _, d := range []Position{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		n := Position{X: p.X + d.X, Y: p.Y + d.Y}
		if n.X >= 0 && n.Y >= 0 && n.X < size && n.Y < size {
			out = append(out, n)
		}
	}
	return out
}

func manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
