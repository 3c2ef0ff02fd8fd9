package router

import (
	"sort"
	"strconv"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/placer"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// RoutedPath is one net's routed polyline, in board-space millimetre
// coordinates.
type RoutedPath struct {
	NetName string
	Points  []schematic.Point
}

// Route produces a RoutedPath for every routable net (port count >= 2)
// in s, in priority order, per §4.3. Terminal pairs A* cannot connect
// raise a RouteUnresolved diagnostic and are skipped; Route never
// aborts the whole pass for one failed net.
func Route(s *schematic.Schematic, layout *placer.Layout, priorities schematic.RoutingPriorities, cfg boardconfig.RouterCfg, diagnostics *diag.List) []RoutedPath {
	grid := NewGrid(layout, cfg.ResolutionMM, cfg.ObstaclePenalty)
	expansionCap := cfg.NodeExpansionCapFactor * grid.Width * grid.Height
	if expansionCap <= 0 {
		expansionCap = grid.Width*grid.Height + 1
	}

	nets := s.RoutableNets()
	orderNets(nets, priorities)

	var out []RoutedPath
	for _, n := range nets {
		terminals := terminalCells(s, layout, grid, n)
		if len(terminals) < 2 {
			continue
		}
		cells := routeStar(grid, terminals, expansionCap, n.Name, diagnostics)
		if len(cells) == 0 {
			continue
		}
		for _, c := range cells {
			grid.MarkSoftObstacle(c)
		}
		out = append(out, RoutedPath{NetName: n.Name, Points: cellsToPoints(grid, cells)})
	}
	return out
}

// orderNets sorts nets in place: first by position in priorities (nets
// not listed sort after all listed ones, stable among themselves),
// then by descending port count, then by ascending name.
func orderNets(nets []*schematic.Net, priorities schematic.RoutingPriorities) {
	rank := make(map[string]int, len(priorities))
	for i, name := range priorities {
		rank[name] = i
	}
	const unranked = 1 << 30
	sort.SliceStable(nets, func(i, j int) bool {
		ri, iok := rank[nets[i].Name]
		rj, jok := rank[nets[j].Name]
		if !iok {
			ri = unranked
		}
		if !jok {
			rj = unranked
		}
		if ri != rj {
			return ri < rj
		}
		if len(nets[i].Ports) != len(nets[j].Ports) {
			return len(nets[i].Ports) > len(nets[j].Ports)
		}
		return nets[i].Name < nets[j].Name
	})
}

// terminalCells resolves a net's ports, in order, to grid cells at
// their parent component's center. Ports whose parent has no placed
// position are skipped.
func terminalCells(s *schematic.Schematic, layout *placer.Layout, grid *Grid, n *schematic.Net) []Cell {
	var out []Cell
	for _, port := range n.Ports {
		parent, ok := port.Parent()
		if !ok {
			continue
		}
		placed, ok := layout.By(parent)
		if !ok {
			continue
		}
		out = append(out, grid.PointToCell(placed.Center()))
	}
	return out
}

// routeStar routes a net in star topology anchored at terminals[0],
// connecting sequentially to each subsequent terminal. A failed
// terminal pair is reported and skipped; the rest of the star still
// routes.
func routeStar(grid *Grid, terminals []Cell, expansionCap int, netName string, diagnostics *diag.List) []Cell {
	anchor := terminals[0]
	var allCells []Cell
	allCells = append(allCells, anchor)

	for _, target := range terminals[1:] {
		path, ok := findPath(grid, anchor, target, expansionCap)
		if !ok {
			diagnostics.Add(diag.RouteUnresolved(netName, cellLabel(anchor), cellLabel(target)))
			continue
		}
		allCells = append(allCells, path...)
	}
	if len(allCells) == 1 {
		return nil
	}
	return allCells
}

func cellLabel(c Cell) string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

func cellsToPoints(grid *Grid, cells []Cell) []schematic.Point {
	out := make([]schematic.Point, len(cells))
	for i, c := range cells {
		out[i] = grid.CellToPoint(c)
	}
	return out
}
