package blast

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/engine"
)

const (
	cellWidth = 2 // Screen columns per board cell
	hudHeight = 3 // Title, counters, phase
)

// tierGlyphs are the cell glyphs for group-size tiers 0-3.
var tierGlyphs = [...]rune{'■', '◆', '●', '★'}

// cellColors maps palette colors to screen colors.
var cellColors = map[engine.Color]core.Color{
	engine.Red:    core.ColorRed,
	engine.Blue:   core.ColorBlue,
	engine.Green:  core.ColorGreen,
	engine.Yellow: core.ColorYellow,
	engine.Purple: core.ColorMagenta,
	engine.Orange: core.ColorOrange,
}

// boardBox returns the framed board area, centered below the HUD.
func (g *Game) boardBox() core.Rect {
	w := g.grid.Width()*cellWidth + 2
	h := g.grid.Height() + 2
	return core.NewRect((g.screenW-w)/2, hudHeight, w, h)
}

// minScreenSize returns the smallest screen that fits HUD, board and status.
func (g *Game) minScreenSize() (int, int) {
	box := g.boardBox()
	return core.Max(box.W, 36), hudHeight + box.H + 1
}

// boardPos maps a screen point to a board position. Row 0 is drawn last.
func (g *Game) boardPos(p core.Point) (engine.Pos, bool) {
	col, row, ok := g.boardBox().Inset(1).Tile(p, cellWidth, 1)
	if !ok {
		return engine.Pos{}, false
	}
	return engine.P(col, g.grid.Height()-1-row), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	box := g.boardBox()
	g.renderHUD(dst, box)
	g.renderBoard(dst, box)

	if g.status != "" {
		dst.DrawStyledText(box.X, box.Bottom(), g.status, core.ColorYellow, core.AttrNone)
	}

	g.renderOverlays(dst, box)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	w, h := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

// renderHUD draws the title and counters above the board.
func (g *Game) renderHUD(dst *core.Screen, box core.Rect) {
	dst.DrawStyledText(box.X+(box.W-utf8.RuneCountInString(g.Title()))/2, 0, g.Title(), core.ColorWhite, core.AttrBold)

	groups := g.ctrl.Analyzer().Groups(g.ctrl.MinMatchSize())
	largest := 0
	if len(groups) > 0 {
		largest = groups[0].Size()
	}
	dst.DrawText(box.X, 1, fmt.Sprintf("Moves: %d  Groups: %d  Largest: %d", g.moves, len(groups), largest))

	info := fmt.Sprintf("Board #%d", g.boards)
	if g.ctrl.Resolving() {
		info = "» " + g.ctrl.Pending().String()
	}
	dst.DrawStyledText(box.X, 2, info, core.ColorGray, core.AttrNone)
}

// renderBoard draws the frame and every in-grid cell, top row first.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)

	h := g.grid.Height()
	for y := 0; y < h; y++ {
		sy := box.Y + 1 + (h - 1 - y)
		for x := 0; x < g.grid.Width(); x++ {
			sx := box.X + 1 + x*cellWidth
			pos := engine.P(x, y)

			cell := core.Cell{Rune: '·', Color: core.ColorGray}
			if c, ok := g.grid.Get(pos); ok {
				cell = core.Cell{Rune: tierGlyphs[engine.Tier(c.GroupSize)], Color: cellColors[c.Color]}
				if g.moved[c.Handle] {
					cell.Attr |= core.AttrBold
				}
			}
			if pos == g.cursor && !g.gameOver {
				cell.Attr |= core.AttrReverse
			}

			dst.SetCell(sx, sy, cell)
			dst.SetCell(sx+1, sy, core.Cell{Rune: ' ', Attr: cell.Attr &^ core.AttrBold})
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	centerX := box.X + box.W/2
	centerY := box.Y + box.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		g.drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", fmt.Sprintf("Moves: %d", g.moves), "Press R for a new board")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	// Clear area behind overlay
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.SetCell(x, y, core.Cell{Rune: ' '})
		}
	}

	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawStyledText(x, box.Y+1+i, line, core.ColorWhite, core.AttrBold)
	}
}
