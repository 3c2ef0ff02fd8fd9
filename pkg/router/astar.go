package router

import "container/heap"

// astarNode is one entry in the A* open set.
type astarNode struct {
	cell  Cell
	gCost float64
	hCost float64
	seq   int // insertion order, the final tie-break per §4.3
}

func (n *astarNode) fCost() float64 { return n.gCost + n.hCost }

// openSet is a min-heap over astarNode ordered by (f, h, insertion
// order), the exact tie-break contract in §4.3: "prefer lower f, then
// lower h, then insertion order (stable priority queue)".
type openSet []*astarNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].fCost() != o[j].fCost() {
		return o[i].fCost() < o[j].fCost()
	}
	if o[i].hCost != o[j].hCost {
		return o[i].hCost < o[j].hCost
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) {
	*o = append(*o, x.(*astarNode))
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

// findPath runs single-source A* from start to goal over g, per §4.3's
// contract: 4-connected neighbors, Manhattan heuristic, obstacle step
// penalty, goal-pop termination. expansionCap bounds the number of
// cells popped from the open set before giving up, guarding against
// pathological grids.
//
// Returns the path (start..goal inclusive, as grid cells) and
// true, or nil and false if no path was found within the cap.
func findPath(g *Grid, start, goal Cell, expansionCap int) ([]Cell, bool) {
	if start == goal {
		return []Cell{start}, true
	}

	gScore := map[Cell]float64{start: 0}
	cameFrom := map[Cell]Cell{}
	closed := map[Cell]bool{}

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &astarNode{cell: start, gCost: 0, hCost: manhattan(start, goal), seq: 0})
	seq := 1

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if closed[current.cell] {
			continue
		}
		if current.cell == goal {
			return reconstructPath(cameFrom, goal, start), true
		}
		closed[current.cell] = true

		expansions++
		if expansions > expansionCap {
			return nil, false
		}

		for _, neighbor := range g.Neighbors(current.cell) {
			if closed[neighbor] {
				continue
			}
			tentative := gScore[current.cell] + g.StepCost(neighbor)
			if best, ok := gScore[neighbor]; ok && tentative >= best {
				continue
			}
			gScore[neighbor] = tentative
			cameFrom[neighbor] = current.cell
			heap.Push(open, &astarNode{
				cell:  neighbor,
				gCost: tentative,
				hCost: manhattan(neighbor, goal),
				seq:   seq,
			})
			seq++
		}
	}
	return nil, false
}

// manhattan is the A* heuristic: admissible since every step cost >= 1.0.
func manhattan(a, b Cell) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// reconstructPath walks parent pointers from goal back to start,
// reversing into start->goal order.
func reconstructPath(cameFrom map[Cell]Cell, goal, start Cell) []Cell {
	path := []Cell{goal}
	current := goal
	for current != start {
		parent, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, parent)
		current = parent
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
