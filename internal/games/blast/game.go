// Package blast implements the tile-blast puzzle: click a group of two or
// more same-colored cells to clear it, watch the survivors fall and the
// gaps refill from above.
package blast

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/engine"
)

// Game owns one board and drives its cascade controller at a fixed pace.
type Game struct {
	variant Variant
	cfg     config.BlastConfig
	rng     *rand.Rand
	tick    uint64

	grid    *engine.Grid
	pool    *engine.BoundedPool
	curator *engine.Curator
	ctrl    *engine.Controller

	cursor engine.Pos
	moved  map[engine.Handle]bool // Cells that fell during the last step

	stepTicks int // Ticks between cascade steps; 0 = resolve within one tick
	countdown int

	moves    int // Clicks that cleared a group
	rejected int // Clicks refused while a cascade was running
	boards   int // Boards dealt since Reset
	status   string
	pending  []engine.Resolution

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	gameOver bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if p, err := config.ParseDifficultyPreset(preset); err == nil {
		difficultyPreset = p
	}
}

// SetLogger sets the logger handed to every new board's controller.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description summarizes the board for listings.
func (g *Game) Description() string {
	return g.variant.describe()
}

// Reset loads configuration and deals a fresh board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg, g.status = loadConfig(g.variant)
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.moves = 0
	g.rejected = 0
	g.boards = 0
	g.pending = nil

	g.stepTicks = stepTicks(g.cfg.Pacing.SettleStepDelay, rc.TickRate)

	settings := g.cfg.Engine()
	// Dimensions are validated by loadConfig
	g.grid, _ = engine.NewGrid(settings.Width, settings.Height)
	g.pool = engine.NewBoundedPool(g.cfg.Pool.Prewarm, g.cfg.PoolMaxLive())
	g.curator = engine.NewCurator(settings.Width, settings.Height, settings, g.rng)
	g.ctrl = engine.NewController(g.grid, g.curator, g.pool, engine.Options{
		MinMatchSize: settings.MinMatchSize,
		Observer:     engine.ObserverFunc(g.cellMoved),
		Logger:       logger.With("variant", g.variant.ID),
		OnResolved:   g.resolved,
	})

	g.deal()
	g.checkScreenSize()
}

// loadConfig resolves the effective configuration for a variant. Errors fall
// back to the defaults and are reported as a status message.
func loadConfig(v Variant) (config.BlastConfig, string) {
	var status string
	cfg, err := config.LoadBlast(configPath)
	if err != nil {
		status = fmt.Sprintf("config: %v (using defaults)", err)
		cfg = config.DefaultBlastConfig()
	}
	config.ApplyBlastPreset(&cfg, difficultyPreset)
	v.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		status = fmt.Sprintf("config: %v (using defaults)", err)
		cfg = config.DefaultBlastConfig()
		v.apply(&cfg)
	}
	return cfg, status
}

// stepTicks converts the settle delay to simulation ticks.
func stepTicks(delay time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return int(delay * time.Duration(tickRate) / time.Second)
}

// deal populates a new board.
func (g *Game) deal() {
	g.boards++
	g.moved = make(map[engine.Handle]bool)
	g.countdown = 0
	g.gameOver = false

	if err := g.ctrl.Populate(); err != nil {
		g.status = fmt.Sprintf("cannot deal board: %v", err)
		g.gameOver = true
		return
	}

	g.cursor = engine.P(g.grid.Width()/2, g.grid.Height()/2)
	g.checkGameOver()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := g.minScreenSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize adapts to a new terminal size without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkGameOver ends the board when no group can be cleared.
func (g *Game) checkGameOver() {
	g.gameOver = !g.ctrl.Analyzer().HasMove(g.ctrl.MinMatchSize())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if g.ctrl.Resolving() {
			g.status = "wait for the board to settle"
		} else {
			g.status = ""
			g.deal()
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if p, ok := in.ClickAt(); ok {
		if pos, hit := g.boardPos(p); hit {
			g.cursor = pos
			g.click(pos)
		}
	} else if in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}

	if g.ctrl.Resolving() {
		g.runCascade()
	}

	return core.StepResult{State: g.State()}
}

// moveCursor applies cursor actions. Up moves toward higher rows.
func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y++
	case in.Has(core.ActionDown):
		g.cursor.Y--
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	default:
		return
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, g.grid.Width()-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, g.grid.Height()-1)
}

// click asks the controller to resolve a click at pos.
func (g *Game) click(pos engine.Pos) {
	if g.gameOver {
		return
	}

	err := g.ctrl.Begin(pos)
	switch {
	case errors.Is(err, engine.ErrBusy):
		g.rejected++
		g.status = "busy: board still settling"
		return
	case err != nil:
		g.status = err.Error()
		return
	}

	if !g.ctrl.Resolving() {
		g.status = fmt.Sprintf("group of %d is too small", g.ctrl.Analyzer().GroupSize(pos))
		return
	}
	g.status = ""
	// The first step runs on the click's own tick
	g.countdown = 0
}

// runCascade advances the pending resolution when its pacing delay elapses.
func (g *Game) runCascade() {
	if g.countdown > 0 {
		g.countdown--
		return
	}
	g.countdown = g.stepTicks

	clear(g.moved)
	for g.ctrl.Resolving() {
		if _, err := g.ctrl.Advance(); err != nil {
			g.status = fmt.Sprintf("refill stopped: %v", err)
		}
		if g.stepTicks > 0 {
			break
		}
	}

	if !g.ctrl.Resolving() {
		g.checkGameOver()
	}
}

// cellMoved records a falling cell for rendering.
func (g *Game) cellMoved(h engine.Handle, _ engine.Pos) {
	g.moved[h] = true
}

// resolved collects finished resolutions for the platform.
func (g *Game) resolved(res engine.Resolution) {
	if len(res.Cleared) > 0 {
		g.moves++
	}
	g.pending = append(g.pending, res)
}

// TakeResolutions returns and forgets the resolutions finished since the
// previous call.
func (g *Game) TakeResolutions() []engine.Resolution {
	out := g.pending
	g.pending = nil
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:     g.moves,
		Resolving: g.ctrl != nil && g.ctrl.Resolving(),
		GameOver:  g.gameOver,
		Paused:    g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click/Enter: Blast | Arrows/WASD: Move | P: Pause | R: New board | Tab: Stats | Q: Quit"
}
