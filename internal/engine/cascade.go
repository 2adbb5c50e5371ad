package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is a step of a click resolution.
type Phase int

const (
	PhaseIdle     Phase = iota // No resolution in progress
	PhaseSelect                // Find the clicked group
	PhaseClear                 // Vacate the group, release handles
	PhaseSettle                // Gravity passes until nothing falls
	PhaseRescan                // Refresh group sizes after settling
	PhaseRefill                // Spawn cells into the staging rows
	PhaseResettle              // Drop staged cells in, then rescan
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSelect:
		return "Select"
	case PhaseClear:
		return "Clear"
	case PhaseSettle:
		return "Settle"
	case PhaseRescan:
		return "Rescan"
	case PhaseRefill:
		return "Refill"
	case PhaseResettle:
		return "Resettle"
	default:
		return "Unknown"
	}
}

// Observer is notified of every single-row fall so a renderer can animate it.
type Observer interface {
	CellMoved(h Handle, to Pos)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(h Handle, to Pos)

// CellMoved implements Observer.
func (f ObserverFunc) CellMoved(h Handle, to Pos) {
	f(h, to)
}

type nopObserver struct{}

func (nopObserver) CellMoved(Handle, Pos) {}

// Resolution describes what one click did to the board.
type Resolution struct {
	Origin        Pos   // Clicked position
	Color         Color // Color of the clicked group
	Selected      int   // Size of the clicked group
	Cleared       []Pos // Removed positions; empty when the click was rejected
	SettlePasses  int   // Gravity passes that moved at least one cell
	Moves         int   // Single-row falls, settle and resettle combined
	Spawned       int   // Refill cells created
	PoolExhausted bool  // Refill stopped early for lack of handles
	Recovery      bool  // Rejected click that refilled a short board
}

// Options configures a Controller.
type Options struct {
	MinMatchSize int              // Smallest clearable group; 0 means 2
	Observer     Observer         // Receives single-row falls; may be nil
	Logger       *log.Logger      // May be nil
	OnResolved   func(Resolution) // Called when a resolution reaches Idle; may be nil
}

// Controller runs the clear -> settle -> rescan -> refill -> resettle pipeline.
// It is single-threaded: while a resolution is pending every new action is
// rejected with ErrBusy rather than queued.
type Controller struct {
	grid     *Grid
	analyzer *Analyzer
	curator  *Curator
	pool     CellPool

	observer   Observer
	logger     *log.Logger
	onResolved func(Resolution)
	minMatch   int

	pending Phase // Next phase to run; PhaseIdle when not resolving
	group   Group
	current Resolution
	last    Resolution
	err     error // Deferred until the resolution finishes
}

// NewController creates a controller over grid. The curator and pool are
// borrowed for the controller's lifetime.
func NewController(grid *Grid, curator *Curator, pool CellPool, opts Options) *Controller {
	if opts.MinMatchSize <= 0 {
		opts.MinMatchSize = 2
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Controller{
		grid:       grid,
		analyzer:   NewAnalyzer(grid),
		curator:    curator,
		pool:       pool,
		observer:   opts.Observer,
		logger:     opts.Logger,
		onResolved: opts.OnResolved,
		minMatch:   opts.MinMatchSize,
	}
}

// Grid returns the board the controller mutates.
func (c *Controller) Grid() *Grid {
	return c.grid
}

// Analyzer returns the analyzer bound to the board.
func (c *Controller) Analyzer() *Analyzer {
	return c.analyzer
}

// MinMatchSize returns the smallest clearable group size.
func (c *Controller) MinMatchSize() int {
	return c.minMatch
}

// Resolving reports whether a resolution is in progress.
func (c *Controller) Resolving() bool {
	return c.pending != PhaseIdle
}

// Pending returns the phase the next Advance will run.
func (c *Controller) Pending() Phase {
	return c.pending
}

// Last returns the most recently finished resolution.
func (c *Controller) Last() Resolution {
	return c.last
}

// Populate discards the current board and fills every slot with curated
// colors, column by column from the bottom.
func (c *Controller) Populate() error {
	if c.Resolving() {
		return ErrBusy
	}

	for _, cell := range c.grid.Cells() {
		c.pool.Release(cell.Handle)
		_ = c.grid.Set(cell.Pos, nil)
	}

	c.curator.ResetSeeds()
	placed := make(map[Pos]Color, c.grid.width*c.grid.height)

	for x := 0; x < c.grid.width; x++ {
		for y := 0; y < c.grid.height; y++ {
			p := P(x, y)
			h, err := c.pool.Acquire()
			if err != nil {
				c.logger.Error("populate stopped", "at", p, "placed", len(placed), "error", err)
				c.analyzer.RescanAll()
				return fmt.Errorf("populate %v: %w", p, err)
			}
			color := c.curator.ColorForInitialPlacement(p, placed)
			placed[p] = color
			_ = c.grid.Set(p, &Cell{Color: color, Handle: h})
		}
	}

	c.analyzer.RescanAll()
	c.logger.Debug("board populated", "cells", len(placed), "seeds", c.curator.Seeds())
	return nil
}

// Begin starts resolving a click at p and runs the Select phase.
// A group smaller than the minimum match size leaves the board untouched
// and the controller Idle, unless the board still has vacancies from an
// aborted refill, in which case the refill phases run instead.
func (c *Controller) Begin(p Pos) error {
	if c.Resolving() {
		return ErrBusy
	}
	if !c.grid.IsValid(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	cell, ok := c.grid.Get(p)
	if !ok {
		return fmt.Errorf("%w: %v", ErrEmptyCell, p)
	}

	group := c.analyzer.ConnectedGroup(p)
	c.current = Resolution{
		Origin:   p,
		Color:    cell.Color,
		Selected: group.Size(),
	}

	if group.Size() < c.minMatch {
		if c.grid.Vacancies() > 0 {
			c.current.Recovery = true
			c.pending = PhaseRefill
		}
		return nil
	}

	c.group = group
	c.pending = PhaseClear
	return nil
}

// Advance runs the pending phase and returns it. Settle and Resettle run a
// single gravity pass per call and stay pending until a pass moves nothing.
// The error of a resolution that hit pool exhaustion is returned by the call
// that finishes it.
func (c *Controller) Advance() (Phase, error) {
	phase := c.pending

	switch phase {
	case PhaseIdle:
		return PhaseIdle, nil

	case PhaseClear:
		c.clear()
		c.pending = PhaseSettle

	case PhaseSettle:
		moved, err := c.settlePass()
		if err != nil {
			return phase, c.abort(err)
		}
		if !moved {
			c.pending = PhaseRescan
		}

	case PhaseRescan:
		c.analyzer.RescanAll()
		c.pending = PhaseRefill

	case PhaseRefill:
		if err := c.refill(); err != nil {
			c.err = err
		}
		c.pending = PhaseResettle

	case PhaseResettle:
		moved, err := c.settlePass()
		if err != nil {
			return phase, c.abort(err)
		}
		if !moved {
			c.analyzer.RescanAll()
			return phase, c.finish()
		}
	}

	return phase, nil
}

// Click resolves a click at p to completion.
func (c *Controller) Click(p Pos) (Resolution, error) {
	if err := c.Begin(p); err != nil {
		return Resolution{}, err
	}
	if !c.Resolving() {
		return c.current, nil
	}
	for c.Resolving() {
		if _, err := c.Advance(); err != nil {
			return c.last, err
		}
	}
	return c.last, nil
}

// clear vacates every member of the selected group.
func (c *Controller) clear() {
	for _, p := range c.group.Members {
		cell, ok := c.grid.Get(p)
		if !ok {
			continue
		}
		c.pool.Release(cell.Handle)
		_ = c.grid.Set(p, nil)
	}
	c.current.Cleared = c.group.Members
}

// settlePass moves every cell that sits directly above an empty slot down
// one row, staging rows included. Reports whether anything moved.
func (c *Controller) settlePass() (bool, error) {
	moved := false
	top := 2 * c.grid.height

	for x := 0; x < c.grid.width; x++ {
		for y := 1; y < top; y++ {
			from := P(x, y)
			cell, ok := c.grid.Get(from)
			if !ok {
				continue
			}
			to := from.Below()
			if _, occupied := c.grid.Get(to); occupied {
				continue
			}
			if err := c.grid.Move(from, to); err != nil {
				return moved, err
			}
			c.observer.CellMoved(cell.Handle, to)
			c.current.Moves++
			moved = true
		}
	}

	if moved {
		c.current.SettlePasses++
	}
	return moved, nil
}

// refill stages one new cell per empty in-grid slot. After settling, the
// empty slots of a column are its top rows, so the i-th staged cell of a
// column with k vacancies lands at row height-k+i.
func (c *Controller) refill() error {
	colors := c.grid.Colors()

	for x := 0; x < c.grid.width; x++ {
		k := c.grid.ColumnVacancies(x)
		for i := 0; i < k; i++ {
			h, err := c.pool.Acquire()
			if err != nil {
				c.current.PoolExhausted = true
				c.logger.Warn("refill aborted",
					"column", x,
					"spawned", c.current.Spawned,
					"vacancies", c.grid.Vacancies(),
					"error", err,
				)
				return fmt.Errorf("refill column %d: %w", x, err)
			}

			landing := P(x, c.grid.height-k+i)
			color := c.curator.ColorForRefill(landing, colors)
			colors[landing] = color

			_ = c.grid.Set(P(x, c.grid.height+i), &Cell{Color: color, Handle: h})
			c.current.Spawned++
		}
	}
	return nil
}

// finish returns the controller to Idle and reports the resolution.
func (c *Controller) finish() error {
	res := c.current
	err := c.err

	c.pending = PhaseIdle
	c.group = Group{}
	c.err = nil
	c.last = res

	c.logger.Debug("resolution complete",
		"origin", res.Origin,
		"color", res.Color,
		"cleared", len(res.Cleared),
		"passes", res.SettlePasses,
		"spawned", res.Spawned,
	)
	if c.onResolved != nil {
		c.onResolved(res)
	}
	return err
}

// abort ends a resolution that hit an internal grid error.
func (c *Controller) abort(err error) error {
	phase := c.pending
	c.logger.Error("resolution aborted", "phase", phase, "error", err)
	c.pending = PhaseIdle
	c.group = Group{}
	c.err = nil
	return fmt.Errorf("%s: %w", phase, err)
}
