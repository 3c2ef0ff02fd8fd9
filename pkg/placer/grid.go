package placer

import (
	"math"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// GridSeed computes the Stage 1 deterministic grid layout per §4.2: with
// n components, g = ceil(sqrt(n)), cell size from cfg.Board.GridCellMM;
// component i (in canonical InstanceRef order) goes to row i/g, column
// i%g, top-left (margin + col*cell, margin + row*cell). Board bounds are
// 2*margin + g*cell on each side.
//
// An empty schematic yields the configured default board dimensions
// with no placed components.
func GridSeed(s *schematic.Schematic, cfg *boardconfig.Config) *Layout {
	refs := s.Components()
	if len(refs) == 0 {
		return &Layout{Width: cfg.Board.DefaultWidthMM, Height: cfg.Board.DefaultHeightMM}
	}

	n := len(refs)
	g := int(math.Ceil(math.Sqrt(float64(n))))
	cell := cfg.Board.GridCellMM
	margin := cfg.Board.MarginMM
	compW := cfg.Board.ComponentWidthMM
	compH := cfg.Board.ComponentHeightMM

	components := make([]PlacedComponent, 0, n)
	for i, ref := range refs {
		row := i / g
		col := i % g
		components = append(components, PlacedComponent{
			Ref: ref,
			Bounds: schematic.Rect{
				X:      margin + float64(col)*cell,
				Y:      margin + float64(row)*cell,
				Width:  compW,
				Height: compH,
			},
		})
	}

	side := 2*margin + float64(g)*cell
	return &Layout{Components: components, Width: side, Height: side}
}
