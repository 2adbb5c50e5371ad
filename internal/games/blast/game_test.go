package blast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/engine"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// isolate keeps user and local config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
}

func newGame(t *testing.T, v Variant, seed int64) *Game {
	t.Helper()
	isolate(t)
	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

// screenPoint returns the screen position of a board cell.
func screenPoint(g *Game, pos engine.Pos) (int, int) {
	box := g.boardBox()
	return box.X + 1 + pos.X*cellWidth, box.Y + 1 + (g.grid.Height() - 1 - pos.Y)
}

func clickFrame(g *Game, pos engine.Pos) core.InputFrame {
	in := core.NewInputFrame()
	x, y := screenPoint(g, pos)
	in.SetClick(x, y)
	return in
}

// settle steps until the current cascade finishes.
func settle(t *testing.T, g *Game) {
	t.Helper()
	idle := core.NewInputFrame()
	for i := 0; g.State().Resolving; i++ {
		if i > 5000 {
			t.Fatal("cascade did not finish")
		}
		g.Step(idle)
	}
}

func largestGroup(t *testing.T, g *Game) engine.Group {
	t.Helper()
	groups := g.ctrl.Analyzer().Groups(g.ctrl.MinMatchSize())
	if len(groups) == 0 {
		t.Fatal("board has no clearable group")
	}
	return groups[0]
}

func TestGameIDs(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q): %v", v.ID, err)
		}
		if g.ID() != v.ID || g.Title() != v.Title {
			t.Errorf("variant %q created game %q/%q", v.ID, g.ID(), g.Title())
		}
	}
}

func TestVariantBoardSizes(t *testing.T) {
	tests := []struct {
		variant       Variant
		width, height int
		colors        int
	}{
		{Variants[0], 10, 10, 5},
		{Variants[1], 6, 6, 4},
		{Variants[2], 16, 12, 6},
	}

	for _, tc := range tests {
		t.Run(tc.variant.ID, func(t *testing.T) {
			g := newGame(t, tc.variant, 1)
			if g.grid.Width() != tc.width || g.grid.Height() != tc.height {
				t.Errorf("board = %dx%d, expected %dx%d", g.grid.Width(), g.grid.Height(), tc.width, tc.height)
			}
			if g.cfg.Board.ColorCount != tc.colors {
				t.Errorf("colors = %d, expected %d", g.cfg.Board.ColorCount, tc.colors)
			}
			if g.grid.Count() != tc.width*tc.height {
				t.Errorf("board not full: %d cells", g.grid.Count())
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	isolate(t)
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24, TickRate: 60}

	g1 := New(Variants[0])
	g1.Reset(cfg)
	g2 := New(Variants[0])
	g2.Reset(cfg)

	for i := 0; i < 300; i++ {
		in := core.NewInputFrame()
		if i%40 == 0 && !g1.State().Resolving {
			// Both games must agree on the largest group
			pos := largestGroup(t, g1).Members[0]
			in = clickFrame(g1, pos)
		}
		if i == 150 {
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Moves == 0 {
		t.Error("expected some clears during the run")
	}
}

func TestClickClearsAndRefills(t *testing.T) {
	g := newGame(t, Variants[0], 7)
	group := largestGroup(t, g)

	res := g.Step(clickFrame(g, group.Members[0]))
	if !res.State.Resolving {
		t.Fatal("click on a group should start a cascade")
	}
	if g.cursor != group.Members[0] {
		t.Errorf("cursor = %v, expected clicked cell %v", g.cursor, group.Members[0])
	}
	settle(t, g)

	snap := g.Snapshot()
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", snap.Moves)
	}
	if g.grid.Count() != 100 || g.grid.StagedCount() != 0 {
		t.Errorf("board should be full after refill: %d cells, %d staged", g.grid.Count(), g.grid.StagedCount())
	}
	if snap.Live != 100 {
		t.Errorf("pool live = %d, expected 100", snap.Live)
	}

	resolutions := g.TakeResolutions()
	if len(resolutions) != 1 {
		t.Fatalf("TakeResolutions() returned %d, expected 1", len(resolutions))
	}
	if len(resolutions[0].Cleared) != group.Size() || resolutions[0].Spawned != group.Size() {
		t.Errorf("resolution %+v does not match group of %d", resolutions[0], group.Size())
	}
	if len(g.TakeResolutions()) != 0 {
		t.Error("TakeResolutions should drain")
	}
}

func TestClickDuringCascadeIsRejected(t *testing.T) {
	g := newGame(t, Variants[0], 3)
	groups := g.ctrl.Analyzer().Groups(2)
	if len(groups) < 2 {
		t.Skip("need two groups")
	}

	g.Step(clickFrame(g, groups[0].Members[0]))
	if !g.State().Resolving {
		t.Fatal("expected cascade to be running")
	}

	g.Step(clickFrame(g, groups[1].Members[0]))
	if g.Snapshot().Rejected != 1 {
		t.Errorf("Rejected = %d, expected 1", g.Snapshot().Rejected)
	}
	if !strings.Contains(g.status, "busy") {
		t.Errorf("status = %q, expected busy message", g.status)
	}

	settle(t, g)
	if len(g.TakeResolutions()) != 1 {
		t.Error("rejected click must not produce a resolution")
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	g := newGame(t, Variants[0], 3)
	before := g.Snapshot()

	in := core.NewInputFrame()
	in.SetClick(0, 0)
	g.Step(in)

	after := g.Snapshot()
	if after.Board != before.Board || after.State != StatePlaying {
		t.Error("click outside the board should do nothing")
	}
}

func TestSmallGroupLeavesBoard(t *testing.T) {
	g := newGame(t, Variants[0], 5)

	var lone *engine.Cell
	for _, c := range g.grid.Cells() {
		if c.GroupSize == 1 {
			lone = c
			break
		}
	}
	if lone == nil {
		t.Skip("no isolated cell on this board")
	}

	before := g.grid.String()
	g.cursor = lone.Pos
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	res := g.Step(in)

	if res.State.Resolving || g.grid.String() != before {
		t.Error("a lone cell must not start a cascade")
	}
	if !strings.Contains(g.status, "too small") {
		t.Errorf("status = %q", g.status)
	}
}

func TestInstantPacing(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "instant.yaml")
	if err := os.WriteFile(path, []byte("pacing:\n  settle_step_delay: 0s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New(Variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9})
	if g.stepTicks != 0 {
		t.Fatalf("stepTicks = %d, expected 0", g.stepTicks)
	}

	res := g.Step(clickFrame(g, largestGroup(t, g).Members[0]))
	if res.State.Resolving {
		t.Error("zero delay should resolve within the click's tick")
	}
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", res.State.Moves)
	}
}

func TestBadConfigFallsBack(t *testing.T) {
	isolate(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New(Variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.grid.Width() != 10 {
		t.Errorf("expected default board, got width %d", g.grid.Width())
	}
	if !strings.HasPrefix(g.status, "config:") {
		t.Errorf("status = %q, expected config error", g.status)
	}
}

func TestDifficultyPreset(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("normal") })

	g := newGame(t, Variants[0], 1)
	if g.cfg.Board.ColorCount != 4 {
		t.Errorf("easy colors = %d, expected 4", g.cfg.Board.ColorCount)
	}
	if g.curator.Seeds() != g.cfg.Curator.MinimumSeedGroupCount {
		t.Errorf("seeds = %d, expected %d", g.curator.Seeds(), g.cfg.Curator.MinimumSeedGroupCount)
	}
}

func TestGameOverAndNewBoard(t *testing.T) {
	g := newGame(t, Variants[1], 2)

	// Replace the board with a checkerboard: nothing can be cleared.
	for _, c := range g.grid.Cells() {
		c.Color = engine.Color((c.Pos.X + c.Pos.Y) % 2)
	}
	g.ctrl.Analyzer().RescanAll()
	g.checkGameOver()
	if !g.State().GameOver {
		t.Fatal("checkerboard should end the game")
	}

	before := g.grid.String()
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	if g.grid.String() != before {
		t.Error("clicks after game over should be ignored")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.Snapshot().Boards != 2 {
		t.Errorf("Boards = %d, expected 2", g.Snapshot().Boards)
	}
	if g.State().GameOver {
		t.Error("a fresh board starts with seeded groups")
	}
	if g.pool.Live() != 36 {
		t.Errorf("pool live = %d, expected 36", g.pool.Live())
	}
}

func TestRestartWaitsForCascade(t *testing.T) {
	g := newGame(t, Variants[0], 4)
	g.Step(clickFrame(g, largestGroup(t, g).Members[0]))

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.Snapshot().Boards != 1 {
		t.Error("restart must wait until the cascade finishes")
	}
}

func TestCursorMovement(t *testing.T) {
	g := newGame(t, Variants[1], 1)
	start := g.cursor

	step := func(a core.Action) {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}

	step(core.ActionUp)
	if g.cursor.Y != start.Y+1 {
		t.Errorf("Up: cursor = %v, expected row %d", g.cursor, start.Y+1)
	}
	for i := 0; i < 20; i++ {
		step(core.ActionRight)
	}
	if g.cursor.X != 5 {
		t.Errorf("cursor should clamp to last column, got %v", g.cursor)
	}
	for i := 0; i < 20; i++ {
		step(core.ActionDown)
	}
	if g.cursor.Y != 0 {
		t.Errorf("cursor should clamp to bottom row, got %v", g.cursor)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, Variants[0], 1)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if !g.Step(in).State.Paused {
		t.Fatal("expected paused")
	}

	before := g.grid.String()
	g.Step(clickFrame(g, largestGroup(t, g).Members[0]))
	if g.grid.String() != before || g.State().Resolving {
		t.Error("clicks while paused must be ignored")
	}

	if g.Step(in).State.Paused {
		t.Error("expected unpaused")
	}
}

func TestWindowTooSmall(t *testing.T) {
	isolate(t)
	g := New(Variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %q", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	before := g.Snapshot().Board
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing the window should unpause the game")
	}
	if g.Snapshot().Board != before {
		t.Error("resize should keep the current board")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, Variants[1], 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Blast Mini") {
		t.Error("render should include the title")
	}
	if !strings.Contains(out, "Moves: 0") {
		t.Error("render should include the move counter")
	}

	// Bottom-left cell sits on the last board row.
	pos := engine.P(0, 0)
	x, y := screenPoint(g, pos)
	cell, _ := g.grid.Get(pos)
	got := screen.GetCell(x, y)
	if got.Rune != tierGlyphs[engine.Tier(cell.GroupSize)] || got.Color != cellColors[cell.Color] {
		t.Errorf("cell (0,0) rendered as %+v", got)
	}

	x, y = screenPoint(g, g.cursor)
	if !screen.GetCell(x, y).Attr.Has(core.AttrReverse) {
		t.Error("cursor cell should be highlighted")
	}
}

func TestBoardPosRoundTrip(t *testing.T) {
	g := newGame(t, Variants[1], 1)
	for _, c := range g.grid.Cells() {
		x, y := screenPoint(g, c.Pos)
		for dx := 0; dx < cellWidth; dx++ {
			pos, ok := g.boardPos(core.Point{X: x + dx, Y: y})
			if !ok || pos != c.Pos {
				t.Errorf("boardPos(%d,%d) = %v, %v; expected %v", x+dx, y, pos, ok, c.Pos)
			}
		}
	}
}

func TestStepTicks(t *testing.T) {
	tests := []struct {
		delayMS  int
		rate     int
		expected int
	}{
		{50, 60, 3},
		{0, 60, 0},
		{100, 30, 3},
		{50, 0, 3},
	}
	for _, tc := range tests {
		got := stepTicks(time.Duration(tc.delayMS)*time.Millisecond, tc.rate)
		if got != tc.expected {
			t.Errorf("stepTicks(%dms, %d) = %d, expected %d", tc.delayMS, tc.rate, got, tc.expected)
		}
	}
}
