package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Moves: 3")
	s.DrawStyledText(0, 1, "■■", core.ColorRed, core.AttrBold)
	s.DrawStyledText(2, 1, "◆", core.ColorBlue, core.AttrReverse)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 12 {
		t.Errorf("line 0 width = %d, want 12", w)
	}
	if !strings.Contains(out, "Moves: 3") {
		t.Error("plain text should pass through")
	}
	if !strings.Contains(out, "■■") || !strings.Contains(out, "◆") {
		t.Error("styled glyphs should be present")
	}
}

func TestStyleForAttributes(t *testing.T) {
	style := styleFor(core.ColorGreen, core.AttrBold|core.AttrFaint)
	if !style.GetBold() {
		t.Error("bold attribute should set bold")
	}
	if !style.GetFaint() {
		t.Error("faint attribute should set faint")
	}
	if style.GetReverse() {
		t.Error("reverse should be unset")
	}

	if got := styleFor(core.Color(200), core.AttrNone); got.GetBold() {
		t.Error("unknown colors should fall back to the plain style")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Blast Grand", 6); got != "Blast." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Blast", 6); got != "Blast" {
		t.Errorf("truncate = %q", got)
	}
}
