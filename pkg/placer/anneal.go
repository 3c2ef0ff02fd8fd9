package placer

import (
	"math"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/boardrng"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// annealer holds the state threaded through one simulated-annealing run.
type annealer struct {
	layout        *Layout
	board         schematic.Rect
	cfg           boardconfig.PlacerCfg
	rng           *boardrng.RNG
	hints         schematic.PlacementHints
	refdesByIndex map[int]string
	netMembers    [][]int // per-net list of component indices, deduped
	step          float64
	temperature   float64
	initialTemp   float64
}

// Anneal refines layout in place with Stage 2 simulated annealing
// (§4.2). It returns the final residual overlap area; a value > 0
// means the placer did not fully resolve overlaps within its budget.
//
// If cfg.IterationBudget <= 0 or fewer than two components are placed,
// Anneal is a no-op and returns the layout's current overlap (always 0
// for a grid seed, since it never overlaps components).
func Anneal(layout *Layout, s *schematic.Schematic, hints schematic.PlacementHints, cfg boardconfig.PlacerCfg, rng *boardrng.RNG) float64 {
	if cfg.IterationBudget <= 0 || len(layout.Components) < 2 {
		return layout.TotalOverlapArea()
	}

	a := &annealer{
		layout:        layout,
		board:         schematic.Rect{X: 0, Y: 0, Width: layout.Width, Height: layout.Height},
		cfg:           cfg,
		rng:           rng,
		hints:         hints,
		refdesByIndex: buildRefdesIndex(layout, s),
		netMembers:    buildNetMembership(layout, s),
	}
	a.step = averageComponentSpan(layout) / 2
	a.initialTemp = a.autoTuneTemperature()
	a.temperature = a.initialTemp

	currentCost := a.cost()
	bestLayout := cloneComponents(layout.Components)
	bestCost := currentCost

	for i := 0; i < cfg.IterationBudget; i++ {
		idx, ok := a.pickMovable()
		if !ok {
			break // every component is frozen; nothing left to refine.
		}
		undo := a.applyMove(idx)
		newCost := a.cost()
		delta := newCost - currentCost

		accept := delta <= 0
		if !accept && a.temperature > 0 {
			accept = a.rng.Float64() < math.Exp(-delta/a.temperature)
		}

		if accept {
			currentCost = newCost
			if currentCost < bestCost {
				bestCost = currentCost
				bestLayout = cloneComponents(layout.Components)
			}
		} else {
			undo()
		}

		a.temperature *= a.cfg.CoolingAlpha
		if a.initialTemp > 0 {
			a.step = (averageComponentSpan(layout) / 2) * (a.temperature / a.initialTemp)
		}
	}

	layout.Components = bestLayout
	layout.ResetIndex()
	return layout.TotalOverlapArea()
}

// buildRefdesIndex maps a component's position in layout.Components to
// its reference designator, for O(1) hint lookups during annealing.
func buildRefdesIndex(layout *Layout, s *schematic.Schematic) map[int]string {
	out := make(map[int]string, len(layout.Components))
	for i, c := range layout.Components {
		if inst, ok := s.Instances[c.Ref]; ok && inst.ReferenceDesignator != "" {
			out[i] = inst.ReferenceDesignator
		}
	}
	return out
}

// buildNetMembership returns, per net, the deduplicated list of
// component indices (into layout.Components) whose pins belong to it.
func buildNetMembership(layout *Layout, s *schematic.Schematic) [][]int {
	compIndex := make(map[schematic.InstanceRef]int, len(layout.Components))
	for i, c := range layout.Components {
		compIndex[c.Ref] = i
	}

	var out [][]int
	for _, name := range s.SortedNetNames() {
		n := s.Nets[name]
		seen := make(map[int]bool)
		var members []int
		for _, port := range n.Ports {
			parent, ok := port.Parent()
			if !ok {
				continue
			}
			idx, ok := compIndex[parent]
			if !ok || seen[idx] {
				continue
			}
			seen[idx] = true
			members = append(members, idx)
		}
		if len(members) > 0 {
			out = append(out, members)
		}
	}
	return out
}

// hintFor resolves the advisory target point for the component at idx.
func (a *annealer) hintFor(idx int) (schematic.Point, bool) {
	refdes, ok := a.refdesByIndex[idx]
	if !ok {
		return schematic.Point{}, false
	}
	p, ok := a.hints[refdes]
	return p, ok
}

// isFrozen reports whether the component at idx is pinned within
// HintFreezeEpsilonMM of its hint target and must not be selected for
// a move.
func (a *annealer) isFrozen(idx int) bool {
	target, ok := a.hintFor(idx)
	if !ok {
		return false
	}
	center := a.layout.Components[idx].Center()
	dx, dy := center.X-target.X, center.Y-target.Y
	return math.Sqrt(dx*dx+dy*dy) <= a.cfg.HintFreezeEpsilonMM
}

// pickMovable returns a uniformly random non-frozen component index, or
// false if every component is frozen.
func (a *annealer) pickMovable() (int, bool) {
	n := len(a.layout.Components)
	movable := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !a.isFrozen(i) {
			movable = append(movable, i)
		}
	}
	if len(movable) == 0 {
		return 0, false
	}
	return movable[a.rng.Intn(len(movable))], true
}

// applyMove mutates the component at idx (swap or nudge, per §4.2) and
// returns a closure that reverts the move. A swap partner is drawn only
// from non-frozen components; with none available the move is a nudge.
func (a *annealer) applyMove(idx int) (undo func()) {
	before := a.layout.Components[idx].Bounds

	if a.rng.Bool() {
		others := make([]int, 0, len(a.layout.Components))
		for i := range a.layout.Components {
			if i != idx && !a.isFrozen(i) {
				others = append(others, i)
			}
		}
		if len(others) > 0 {
			other := others[a.rng.Intn(len(others))]
			otherBefore := a.layout.Components[other].Bounds
			a.swapPositions(idx, other)
			return func() {
				a.layout.Components[idx].Bounds = before
				a.layout.Components[other].Bounds = otherBefore
			}
		}
	}

	a.nudge(idx)
	return func() {
		a.layout.Components[idx].Bounds = before
	}
}

func (a *annealer) swapPositions(i, j int) {
	bi, bj := a.layout.Components[i].Bounds, a.layout.Components[j].Bounds
	a.layout.Components[i].Bounds.X, a.layout.Components[i].Bounds.Y = bj.X, bj.Y
	a.layout.Components[j].Bounds.X, a.layout.Components[j].Bounds.Y = bi.X, bi.Y
}

func (a *annealer) nudge(idx int) {
	step := a.step
	if step <= 0 {
		step = 1
	}
	b := &a.layout.Components[idx].Bounds
	b.X += a.rng.Float64Range(-step, step)
	b.Y += a.rng.Float64Range(-step, step)
	a.clamp(b)
}

// clamp keeps a component's bounds fully inside the board rectangle.
func (a *annealer) clamp(b *schematic.Rect) {
	if b.X < a.board.X {
		b.X = a.board.X
	}
	if b.Y < a.board.Y {
		b.Y = a.board.Y
	}
	if b.X+b.Width > a.board.X+a.board.Width {
		b.X = a.board.X + a.board.Width - b.Width
	}
	if b.Y+b.Height > a.board.Y+a.board.Height {
		b.Y = a.board.Y + a.board.Height - b.Height
	}
}

// cost computes Σ HPWL(net) + overlapPenalty*Σ overlap + hintPenalty*Σ
// squared distance to hint, per §4.2.
func (a *annealer) cost() float64 {
	total := 0.0
	for _, members := range a.netMembers {
		total += a.hpwl(members)
	}
	total += a.cfg.OverlapPenalty * a.layout.TotalOverlapArea()
	total += a.cfg.HintPenalty * a.hintPenaltyTotal()
	return total
}

func (a *annealer) hpwl(members []int) float64 {
	if len(members) == 0 {
		return 0
	}
	c := a.layout.Components[members[0]].Center()
	minX, maxX, minY, maxY := c.X, c.X, c.Y, c.Y
	for _, idx := range members[1:] {
		c := a.layout.Components[idx].Center()
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	return (maxX - minX) + (maxY - minY)
}

func (a *annealer) hintPenaltyTotal() float64 {
	if len(a.hints) == 0 {
		return 0
	}
	total := 0.0
	for idx := range a.layout.Components {
		if target, ok := a.hintFor(idx); ok {
			center := a.layout.Components[idx].Center()
			dx, dy := center.X-target.X, center.Y-target.Y
			total += dx*dx + dy*dy
		}
	}
	return total
}

// autoTuneTemperature samples a batch of candidate moves (without
// keeping them) to estimate the temperature that yields the target
// acceptance ratio on worsening moves, per §4.2.
func (a *annealer) autoTuneTemperature() float64 {
	const samples = 64
	baseline := a.cost()
	var worseningDeltas []float64
	for i := 0; i < samples && len(a.layout.Components) >= 2; i++ {
		idx, ok := a.pickMovable()
		if !ok {
			break
		}
		undo := a.applyMove(idx)
		delta := a.cost() - baseline
		undo()
		if delta > 0 {
			worseningDeltas = append(worseningDeltas, delta)
		}
	}
	if len(worseningDeltas) == 0 {
		return 1.0
	}
	avg := 0.0
	for _, d := range worseningDeltas {
		avg += d
	}
	avg /= float64(len(worseningDeltas))

	ratio := a.cfg.TargetAcceptanceRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.8
	}
	t := -avg / math.Log(ratio)
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 1.0
	}
	return t
}

func averageComponentSpan(layout *Layout) float64 {
	if len(layout.Components) == 0 {
		return 1
	}
	total := 0.0
	for _, c := range layout.Components {
		total += (c.Bounds.Width + c.Bounds.Height) / 2
	}
	return total / float64(len(layout.Components))
}

func cloneComponents(cs []PlacedComponent) []PlacedComponent {
	out := make([]PlacedComponent, len(cs))
	copy(out, cs)
	return out
}
