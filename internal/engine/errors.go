package engine

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrInvalidPosition indicates a coordinate outside the grid (and outside staging where allowed).
	ErrInvalidPosition = errors.New("engine: position out of bounds")
	// ErrEmptyCell indicates a query or move on a vacant slot.
	ErrEmptyCell = errors.New("engine: no cell at position")
	// ErrInvalidMove indicates a Move whose source is empty or whose target is occupied or out of range.
	ErrInvalidMove = errors.New("engine: invalid move")
	// ErrBusy indicates an action requested while a resolution is in progress.
	ErrBusy = errors.New("engine: resolution in progress")
	// ErrPoolExhausted indicates the cell pool cannot supply another handle.
	ErrPoolExhausted = errors.New("engine: cell pool exhausted")
	// ErrInvalidDimensions indicates a grid with a non-positive width or height.
	ErrInvalidDimensions = errors.New("engine: grid dimensions must be positive")
	// ErrInvalidSettings indicates settings outside their recognized ranges.
	ErrInvalidSettings = errors.New("engine: invalid settings")
)
