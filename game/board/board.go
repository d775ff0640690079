// Package board implements the rule core of the tile-connection puzzle: a
// square grid of cells, pairs of colored endpoints, and the operations that
// draw, truncate, and validate the paths connecting them.
//
// The board is the sole owner of cell storage. Path linkage is expressed as
// position-based successor references into the grid, never as pointers, so
// truncating a path can never leave a dangling link.
//
// The package performs no locking; callers that share a Board across
// goroutines must serialize calls to ExtendPath, TruncatePath, and Solved.
package board

import "fmt"

// ColorID identifies a path color ("blue", "red", ...).
type ColorID string

// Pos is a grid position. Row and Col are zero-based.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Adjacent reports whether p and q are 4-directionally adjacent.
func (p Pos) Adjacent(q Pos) bool {
	return abs(p.Row-q.Row)+abs(p.Col-q.Col) == 1
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Endpoint is one of a color's two fixed path termini.
type Endpoint struct {
	Pos   Pos     `json:"pos"`
	Color ColorID `json:"color"`
}

// cell is a single grid position. A cell with no color never has a successor.
type cell struct {
	endpoint bool
	color    ColorID
	succ     Pos
	hasSucc  bool
}

// Board holds an n×n grid of cells and the endpoint list. The dimension and
// the endpoints are fixed at construction; only cell color/successor state
// mutates afterwards, and only through ExtendPath and TruncatePath.
type Board struct {
	dim       int
	grid      [][]cell
	endpoints []Endpoint
}

// New builds a dim×dim board and marks the given endpoints. Every color must
// appear on exactly two distinct positions.
func New(dim int, endpoints []Endpoint) (*Board, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}

	grid := make([][]cell, dim)
	for r := range grid {
		grid[r] = make([]cell, dim)
	}

	b := &Board{
		dim:       dim,
		grid:      grid,
		endpoints: make([]Endpoint, len(endpoints)),
	}
	copy(b.endpoints, endpoints)

	counts := make(map[ColorID]int)
	for _, ep := range b.endpoints {
		if !b.inBounds(ep.Pos) {
			return nil, fmt.Errorf("%w: endpoint %s outside %dx%d grid", ErrOutOfBounds, ep.Pos, dim, dim)
		}
		c := &b.grid[ep.Pos.Row][ep.Pos.Col]
		if c.endpoint {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEndpoint, ep.Pos)
		}
		c.endpoint = true
		c.color = ep.Color
		counts[ep.Color]++
	}

	for color, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("%w: color %q has %d endpoints, want 2", ErrUnpairedColor, color, n)
		}
	}

	return b, nil
}

// Dim returns the board dimension.
func (b *Board) Dim() int {
	return b.dim
}

// Endpoints returns a copy of the endpoint list.
func (b *Board) Endpoints() []Endpoint {
	out := make([]Endpoint, len(b.endpoints))
	copy(out, b.endpoints)
	return out
}

// ColorAt returns the color of the cell at p, or "" if the cell is uncolored
// or out of bounds.
func (b *Board) ColorAt(p Pos) ColorID {
	if !b.inBounds(p) {
		return ""
	}
	return b.grid[p.Row][p.Col].color
}

// IsEndpoint reports whether p is an endpoint cell.
func (b *Board) IsEndpoint(p Pos) bool {
	return b.inBounds(p) && b.grid[p.Row][p.Col].endpoint
}

// SuccessorOf returns the successor of the cell at p, if it has one.
func (b *Board) SuccessorOf(p Pos) (Pos, bool) {
	if !b.inBounds(p) {
		return Pos{}, false
	}
	c := b.grid[p.Row][p.Col]
	return c.succ, c.hasSucc
}

// ExtendPath grows a path by one step: the cell at prev must be the current
// terminal end of a path, and cur becomes its new terminal cell.
//
// Starting from an endpoint implicitly discards the path previously drawn
// from the paired endpoint of the same color; drawing onto a cell already
// covered by another path truncates that path from the covered cell onward
// before overwriting it; drawing back onto an earlier cell of prev's own path
// shortens that path so cur becomes its terminal. The board is left unchanged
// whenever an error is returned.
func (b *Board) ExtendPath(prev, cur Pos) error {
	if !b.inBounds(prev) || !b.inBounds(cur) {
		return fmt.Errorf("%w: %s -> %s on %dx%d board", ErrOutOfBounds, prev, cur, b.dim, b.dim)
	}
	if !prev.Adjacent(cur) {
		return fmt.Errorf("%w: %s -> %s", ErrNotAdjacent, prev, cur)
	}

	prevCell := &b.grid[prev.Row][prev.Col]
	curCell := &b.grid[cur.Row][cur.Col]

	if prevCell.color == "" {
		return fmt.Errorf("%w: %s has no color", ErrNoActivePath, prev)
	}
	if prevCell.hasSucc {
		return fmt.Errorf("%w: %s already has a successor", ErrNotPathEnd, prev)
	}
	if curCell.endpoint && curCell.color != prevCell.color {
		return fmt.Errorf("%w: cannot draw %q onto %q endpoint at %s", ErrColorMismatch, prevCell.color, curCell.color, cur)
	}

	// Starting a brand-new path from an endpoint discards the path rooted at
	// the paired endpoint: a color may have only one active path. The pair is
	// "the other endpoint", i.e. any endpoint of the color at a different
	// position.
	if prevCell.endpoint {
		for _, ep := range b.endpoints {
			if ep.Color == prevCell.color && ep.Pos != prev {
				b.TruncatePath(ep.Pos)
			}
		}
	}

	// This must run after the paired truncation above: clearing the paired
	// endpoint's old path can legitimately free up an adjacent endpoint of
	// the same color. If the target endpoint still has a successor here, the
	// move would close a loop back into the path's own origin.
	if curCell.endpoint && curCell.hasSucc {
		return fmt.Errorf("%w: endpoint %s already starts this path", ErrSameEndpointLoop, cur)
	}

	// Drawing from a path's terminal back onto one of its own earlier cells
	// is a backtrack: the tail after cur is erased and cur becomes the new
	// terminal. The overwrite below must not handle this case; truncating at
	// cur would erase prev itself and then relink it uncolored.
	if curCell.color == prevCell.color && !curCell.endpoint && b.reaches(cur, prev) {
		b.TruncatePath(curCell.succ)
		return nil
	}

	// Overwriting a covered non-endpoint cell detaches everything downstream
	// of it in its old path, whichever color that path is.
	if curCell.color != "" && !curCell.endpoint {
		b.TruncatePath(cur)
	}

	prevCell.succ = cur
	prevCell.hasSucc = true
	curCell.color = prevCell.color
	return nil
}

// TruncatePath erases a path from origin onward, following successor links
// until it reaches an empty cell, an endpoint, or the end of the chain. An
// endpoint passed as origin keeps its color and endpoint status; only its
// successor link is cleared. Truncating an already-empty region is a no-op.
//
// The cell just upstream of origin, if any, has its successor link cleared so
// the surviving prefix ends cleanly: clearing cells must never leave a link
// pointing into the erased suffix.
func (b *Board) TruncatePath(origin Pos) {
	if !b.inBounds(origin) {
		return
	}

	cur := origin
	c := &b.grid[cur.Row][cur.Col]
	if c.endpoint {
		if !c.hasSucc {
			return
		}
		cur = c.succ
		c.succ = Pos{}
		c.hasSucc = false
		c = &b.grid[cur.Row][cur.Col]
	} else if c.color != "" {
		b.unlinkPredecessor(cur)
	}

	for c.color != "" && !c.endpoint {
		next, hasNext := c.succ, c.hasSucc
		c.color = ""
		c.succ = Pos{}
		c.hasSucc = false
		if !hasNext {
			return
		}
		cur = next
		c = &b.grid[cur.Row][cur.Col]
	}
}

// Solved reports whether the puzzle is in a winning configuration: every cell
// colored and every color's two endpoints joined by one path.
func (b *Board) Solved() bool {
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			if b.grid[r][c].color == "" {
				return false
			}
		}
	}

	// Each color is checked through exactly one of its two endpoints: the
	// origin of its path, i.e. the endpoint carrying a successor. The other
	// endpoint has no successor and is skipped, so the check is indifferent
	// to which endpoint the player drew from.
	connected := make(map[ColorID]bool)
	colors := make(map[ColorID]bool)
	for _, ep := range b.endpoints {
		colors[ep.Color] = true
		if connected[ep.Color] {
			continue
		}
		c := b.grid[ep.Pos.Row][ep.Pos.Col]
		if !c.hasSucc {
			continue
		}
		term := b.pathEnd(ep.Pos)
		if !b.grid[term.Row][term.Col].endpoint {
			return false
		}
		connected[ep.Color] = true
	}
	return len(connected) == len(colors)
}

// PathFrom returns the chain of positions reachable from origin by following
// successor links, starting with origin itself. Returns nil if origin is out
// of bounds or uncolored.
func (b *Board) PathFrom(origin Pos) []Pos {
	if !b.inBounds(origin) || b.grid[origin.Row][origin.Col].color == "" {
		return nil
	}

	var path []Pos
	cur := origin
	for steps := 0; steps <= b.dim*b.dim; steps++ {
		path = append(path, cur)
		c := b.grid[cur.Row][cur.Col]
		if !c.hasSucc {
			return path
		}
		cur = c.succ
	}
	return path
}

// Paths returns the current path of every color that has one, keyed by color,
// each path starting at its origin endpoint. Colors whose endpoints are still
// bare are omitted.
func (b *Board) Paths() map[ColorID][]Pos {
	paths := make(map[ColorID][]Pos)
	for _, ep := range b.endpoints {
		if _, done := paths[ep.Color]; done {
			continue
		}
		if b.grid[ep.Pos.Row][ep.Pos.Col].hasSucc {
			paths[ep.Color] = b.PathFrom(ep.Pos)
		}
	}
	return paths
}

// unlinkPredecessor clears the successor link of the one cell that names p as
// its successor, if any. The in-degree invariant makes it unique.
func (b *Board) unlinkPredecessor(p Pos) {
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			cl := &b.grid[r][c]
			if cl.hasSucc && cl.succ == p {
				cl.succ = Pos{}
				cl.hasSucc = false
				return
			}
		}
	}
}

// reaches reports whether to can be reached from from by following successor
// links, counting from itself.
func (b *Board) reaches(from, to Pos) bool {
	cur := from
	for steps := 0; steps <= b.dim*b.dim; steps++ {
		if cur == to {
			return true
		}
		c := b.grid[cur.Row][cur.Col]
		if !c.hasSucc {
			return false
		}
		cur = c.succ
	}
	return false
}

// pathEnd follows successor links from p to the chain's terminal cell. The
// step bound guards against a cyclic chain, which the mutation rules make
// unreachable but which would otherwise loop forever.
func (b *Board) pathEnd(p Pos) Pos {
	cur := p
	for steps := 0; steps <= b.dim*b.dim; steps++ {
		c := b.grid[cur.Row][cur.Col]
		if !c.hasSucc {
			return cur
		}
		cur = c.succ
	}
	return cur
}

func (b *Board) inBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.dim && p.Col >= 0 && p.Col < b.dim
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
