package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/engine"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// resolutionSource is implemented by games that report finished cascades.
type resolutionSource interface {
	TakeResolutions() []engine.Resolution
}

// controlsHinter is implemented by games that describe their controls.
type controlsHinter interface {
	Controls() string
}

// resizer is implemented by games that can follow a terminal resize
// without being reset.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for playing a board variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	session    string
	logger     *log.Logger
	stats      *StatsModel // Journal overlay; nil while playing
	journaled  int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session := storage.NewSessionID()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		session:    session,
		logger:     logger.With("session", session, "variant", game.ID()),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.stats != nil {
			return m.handleStats(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.stats == nil {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.stats != nil {
		return m.handleStats(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "tab":
		stats := NewStatsModel(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
		m.stats = &stats
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		return m.quit()
	}
	return m, nil
}

// handleStats forwards a message to the journal overlay.
func (m Model) handleStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	stats, cmd := m.stats.handle(msg)
	switch {
	case stats.IsQuitting():
		return m.quit()
	case stats.IsGoingBack():
		m.stats = nil
		return m, nil
	}
	m.stats = &stats
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	if m.stats != nil {
		m.stats.resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The board holds still while the journal is open
	if m.stats == nil {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.inputFrame.Clear()
	}

	m.journal()
	return m, tickCmd(m.config.TickRate)
}

// journal records the cascades the game finished since the last tick.
// Rejected clicks that did not refill the board are not recorded.
func (m *Model) journal() {
	src, ok := m.game.(resolutionSource)
	if !ok {
		return
	}
	for _, res := range src.TakeResolutions() {
		if len(res.Cleared) == 0 && !res.Recovery {
			continue
		}
		m.logger.Debug("board resolved",
			"origin", res.Origin, "color", res.Color, "cleared", len(res.Cleared),
			"spawned", res.Spawned, "passes", res.SettlePasses)
		if res.PoolExhausted {
			m.logger.Warn("refill stopped early", "origin", res.Origin, "spawned", res.Spawned)
		}

		if m.store == nil {
			continue
		}
		if _, err := m.store.SaveResolution(recordFor(m.session, m.game.ID(), res)); err != nil {
			m.logger.Warn("cannot journal resolution", "err", err)
			continue
		}
		m.journaled++
	}
}

// recordFor converts a finished resolution to a journal record.
func recordFor(session, variant string, res engine.Resolution) storage.Record {
	return storage.Record{
		SessionID:     session,
		Variant:       variant,
		OriginX:       res.Origin.X,
		OriginY:       res.Origin.Y,
		Color:         res.Color.String(),
		GroupSize:     len(res.Cleared),
		Spawned:       res.Spawned,
		SettlePasses:  res.SettlePasses,
		PoolExhausted: res.PoolExhausted,
	}
}

// quit ends the session.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.journal()
	m.logger.Info("session ended", "moves", m.gameState.Moves, "journaled", m.journaled)
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".blast", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.stats != nil {
		return m.stats.View()
	}

	m.game.Render(m.screen)
	m.drawControls()
	return RenderScreen(m.screen)
}

// drawControls puts the game's control hints on the bottom row when the
// game left it blank.
func (m Model) drawControls() {
	hinter, ok := m.game.(controlsHinter)
	if !ok {
		return
	}
	y := m.screen.Height() - 1
	if y < 0 || strings.TrimSpace(m.screen.Row(y)) != "" {
		return
	}
	hint := hinter.Controls()
	x := max((m.screen.Width()-utf8.RuneCountInString(hint))/2, 0)
	m.screen.DrawStyledText(x, y, hint, core.ColorGray, core.AttrFaint)
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
