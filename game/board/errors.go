package board

import "errors"

// Construction errors. No partial board is ever returned alongside one.
var (
	ErrInvalidDimension  = errors.New("board dimension must be positive")
	ErrDuplicateEndpoint = errors.New("two endpoints share a position")
	ErrUnpairedColor     = errors.New("color does not have exactly two endpoints")
)

// Move errors. A rejected ExtendPath leaves the board unchanged.
var (
	ErrOutOfBounds      = errors.New("position outside the board")
	ErrNotAdjacent      = errors.New("positions are not adjacent")
	ErrNoActivePath     = errors.New("previous cell is not part of a path")
	ErrNotPathEnd       = errors.New("previous cell is not the end of its path")
	ErrColorMismatch    = errors.New("cannot draw onto an endpoint of another color")
	ErrSameEndpointLoop = errors.New("path cannot start and end at the same endpoint")
)

// MoveErrorCode maps a move error to a stable machine-readable code for the
// API and MCP layers. Returns "" for nil or unrecognized errors.
func MoveErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrNotAdjacent):
		return "not_adjacent"
	case errors.Is(err, ErrNoActivePath):
		return "no_active_path"
	case errors.Is(err, ErrNotPathEnd):
		return "not_path_end"
	case errors.Is(err, ErrColorMismatch):
		return "color_mismatch"
	case errors.Is(err, ErrSameEndpointLoop):
		return "same_endpoint_loop"
	default:
		return "invalid_move"
	}
}
