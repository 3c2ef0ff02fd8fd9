package router

import (
	"math"

	"github.com/boardgen/boardcore/pkg/placer"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// Cell is a grid coordinate in the router's cell space (distinct from
// board millimetre coordinates; see Grid.CellToPoint).
type Cell struct {
	X, Y int
}

// Grid is the uniform square grid the A* search runs over, with
// component rectangles rasterized in as base obstacles and each
// already-routed net's cells folded in as additional soft obstacles.
type Grid struct {
	Width, Height   int
	Resolution      float64
	ObstaclePenalty float64

	obstacles map[Cell]bool
}

// NewGrid builds a grid sized to layout and rasterizes every placed
// component's bounds as an obstacle, per §4.3.
func NewGrid(layout *placer.Layout, resolution, obstaclePenalty float64) *Grid {
	g := &Grid{
		Width:           int(math.Ceil(layout.Width / resolution)),
		Height:          int(math.Ceil(layout.Height / resolution)),
		Resolution:      resolution,
		ObstaclePenalty: obstaclePenalty,
		obstacles:       make(map[Cell]bool),
	}
	for _, c := range layout.Components {
		g.markObstacleRect(c.Bounds)
	}
	return g
}

func (g *Grid) markObstacleRect(r schematic.Rect) {
	xStart := int(math.Floor(r.X / g.Resolution))
	yStart := int(math.Floor(r.Y / g.Resolution))
	xEnd := int(math.Ceil((r.X + r.Width) / g.Resolution))
	yEnd := int(math.Ceil((r.Y + r.Height) / g.Resolution))
	for x := xStart; x <= xEnd; x++ {
		for y := yStart; y <= yEnd; y++ {
			g.obstacles[Cell{X: x, Y: y}] = true
		}
	}
}

// MarkSoftObstacle adds cell as an additional obstacle for subsequent
// routing, used once a net's path has been committed (§4.3: "its cells
// become additional soft obstacles for subsequent nets").
func (g *Grid) MarkSoftObstacle(cell Cell) {
	g.obstacles[cell] = true
}

// IsObstacle reports whether cell carries the obstacle penalty.
func (g *Grid) IsObstacle(cell Cell) bool {
	return g.obstacles[cell]
}

// InBounds reports whether cell lies within the grid's dimensions.
func (g *Grid) InBounds(cell Cell) bool {
	return cell.X >= 0 && cell.X < g.Width && cell.Y >= 0 && cell.Y < g.Height
}

// Neighbors returns the 4-connected neighbors of cell that lie in bounds.
func (g *Grid) Neighbors(cell Cell) []Cell {
	candidates := [4]Cell{
		{X: cell.X, Y: cell.Y + 1},
		{X: cell.X + 1, Y: cell.Y},
		{X: cell.X, Y: cell.Y - 1},
		{X: cell.X - 1, Y: cell.Y},
	}
	out := make([]Cell, 0, 4)
	for _, n := range candidates {
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// StepCost returns the cost of moving into cell: ObstaclePenalty if it
// is an obstacle, else the free-cell cost of 1.0.
func (g *Grid) StepCost(cell Cell) float64 {
	if g.IsObstacle(cell) {
		return g.ObstaclePenalty
	}
	return 1.0
}

// PointToCell converts a board-space point to its nearest grid cell.
func (g *Grid) PointToCell(p schematic.Point) Cell {
	return Cell{
		X: int(math.Round(p.X / g.Resolution)),
		Y: int(math.Round(p.Y / g.Resolution)),
	}
}

// CellToPoint converts a grid cell to its board-space origin point.
func (g *Grid) CellToPoint(c Cell) schematic.Point {
	return schematic.Point{X: float64(c.X) * g.Resolution, Y: float64(c.Y) * g.Resolution}
}
