package placer

import (
	"fmt"

	"github.com/boardgen/boardcore/pkg/schematic"
)

// PlacedComponent is one component's position on the board.
type PlacedComponent struct {
	Ref    schematic.InstanceRef
	Bounds schematic.Rect
}

// Center returns the midpoint of the component's bounds.
func (p PlacedComponent) Center() schematic.Point {
	return p.Bounds.Center()
}

// Layout is the placer's output: every component's board position plus
// the board's overall footprint.
type Layout struct {
	Components []PlacedComponent
	Width      float64
	Height     float64

	// index accelerates By, built lazily from Components.
	index map[schematic.InstanceRef]int
}

// ResetIndex clears the lazily-built lookup index so the next By call
// rebuilds it. Callers that replace l.Components wholesale (e.g. after
// annealing restores the best-found state) must call this.
func (l *Layout) ResetIndex() {
	l.index = nil
}

// By returns the placed component for ref, or false if ref was not
// placed (e.g. the schematic had no Component instances).
func (l *Layout) By(ref schematic.InstanceRef) (PlacedComponent, bool) {
	if l.index == nil {
		l.index = make(map[schematic.InstanceRef]int, len(l.Components))
		for i, c := range l.Components {
			l.index[c.Ref] = i
		}
	}
	i, ok := l.index[ref]
	if !ok {
		return PlacedComponent{}, false
	}
	return l.Components[i], true
}

// Validate checks that every component lies fully within the board
// rectangle and that no two components overlap.
func (l *Layout) Validate() error {
	board := schematic.Rect{X: 0, Y: 0, Width: l.Width, Height: l.Height}
	for _, c := range l.Components {
		if c.Bounds.X < board.X || c.Bounds.Y < board.Y ||
			c.Bounds.X+c.Bounds.Width > board.X+board.Width ||
			c.Bounds.Y+c.Bounds.Height > board.Y+board.Height {
			return fmt.Errorf("placer: component %s bounds %+v lie outside board %+v", c.Ref, c.Bounds, board)
		}
	}
	for i := 0; i < len(l.Components); i++ {
		for j := i + 1; j < len(l.Components); j++ {
			if l.Components[i].Bounds.OverlapArea(l.Components[j].Bounds) > 0 {
				return fmt.Errorf("placer: components %s and %s overlap", l.Components[i].Ref, l.Components[j].Ref)
			}
		}
	}
	return nil
}

// TotalOverlapArea sums the pairwise overlap area across all placed
// components, used both as the SA overlap-penalty term and as the
// residual reported in a PlacementNotFullyResolved diagnostic.
func (l *Layout) TotalOverlapArea() float64 {
	total := 0.0
	for i := 0; i < len(l.Components); i++ {
		for j := i + 1; j < len(l.Components); j++ {
			total += l.Components[i].Bounds.OverlapArea(l.Components[j].Bounds)
		}
	}
	return total
}
