package blast

import (
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// Variant is a registered board preset. Zero board fields keep the values
// from the loaded configuration.
type Variant struct {
	ID     string
	Title  string
	Width  int
	Height int
	Colors int
}

// Variants lists the built-in board presets.
var Variants = []Variant{
	{ID: "blast", Title: "Blast"},
	{ID: "blast_mini", Title: "Blast Mini", Width: 6, Height: 6, Colors: 4},
	{ID: "blast_grand", Title: "Blast Grand", Width: 16, Height: 12, Colors: 6},
}

func init() {
	for _, v := range Variants {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// apply overrides the configured board with the variant's dimensions.
func (v Variant) apply(cfg *config.BlastConfig) {
	if v.Width > 0 {
		cfg.Board.Width = v.Width
	}
	if v.Height > 0 {
		cfg.Board.Height = v.Height
	}
	if v.Colors > 0 {
		cfg.Board.ColorCount = v.Colors
	}
}

// describe summarizes the board a variant plays on.
func (v Variant) describe() string {
	if v.Width == 0 {
		return "configured board (default 10x10, 5 colors)"
	}
	return fmt.Sprintf("%dx%d, %d colors", v.Width, v.Height, v.Colors)
}
