package blast

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Variant  string
	Width    int
	Height   int
	Board    string // Grid dump, top row first
	CursorX  int
	CursorY  int
	Moves    int
	Rejected int
	Boards   int
	Phase    string
	Live     int // Pool handles in use
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.ctrl.Resolving():
		state = StateResolving
	case g.gameOver:
		state = StateGameOver
	}

	return Snapshot{
		Tick:     g.tick,
		Variant:  g.variant.ID,
		Width:    g.grid.Width(),
		Height:   g.grid.Height(),
		Board:    g.grid.String(),
		CursorX:  g.cursor.X,
		CursorY:  g.cursor.Y,
		Moves:    g.moves,
		Rejected: g.rejected,
		Boards:   g.boards,
		Phase:    g.ctrl.Pending().String(),
		Live:     g.pool.Live(),
		State:    state,
	}
}
