package nav

import (
	"container/heap"

	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
)

const (
	hopCost      = 100 // per jump, so a mounted 3-cell jump beats three walks
	straightCost = 10
	diagonalCost = 14

	defaultMaxNodes = 8192
)

// Grid answers walkability for one map. It is the occupancy oracle.
type Grid struct {
	maps  *data.MapDataTable
	mapID int16
}

func NewGrid(maps *data.MapDataTable, mapID int16) Grid {
	return Grid{maps: maps, mapID: mapID}
}

// CanMove reports whether c is ground and, with avoidOccupied, not held by
// an entity.
func (g Grid) CanMove(avoidOccupied bool, c geom.Cell) bool {
	return g.maps.IsWalkable(g.mapID, c.X, c.Y, avoidOccupied)
}

func (g Grid) MapID() int16 { return g.mapID }

// Stepper supplies the longest jump the moving entity can make (1 on foot,
// 3 on horseback).
type Stepper interface {
	MaxStep() int
}

type fixedStep int

func (s fixedStep) MaxStep() int { return int(s) }

// Finder is an A* pathfinder over a Grid. Jumps are straight or diagonal
// runs of 1 or MaxStep cells, so consecutive path cells are always a
// classifiable hop apart.
type Finder struct {
	Grid
	stepper  Stepper
	maxNodes int
}

func NewFinder(maps *data.MapDataTable, mapID int16) *Finder {
	return &Finder{
		Grid:     NewGrid(maps, mapID),
		stepper:  fixedStep(1),
		maxNodes: defaultMaxNodes,
	}
}

// SetStepper binds the step source, normally the hero itself.
func (f *Finder) SetStepper(s Stepper) {
	if s == nil {
		s = fixedStep(1)
	}
	f.stepper = s
}

// SetMaxNodes bounds the number of expanded cells per search.
func (f *Finder) SetMaxNodes(n int) {
	if n > 0 {
		f.maxNodes = n
	}
}

func (f *Finder) maxStep() int {
	s := f.stepper.MaxStep()
	if s < 1 {
		return 1
	}
	if s > 3 {
		return 3
	}
	return s
}

// FindPath returns the cells from `from` to `to` inclusive, or nil when no
// route exists. avoidBlocked keeps the route on ground tiles; avoidOccupied
// keeps it off cells held by entities, except the goal itself so a route
// toward an occupied target still exists. A path of one cell means from == to.
func (f *Finder) FindPath(from, to geom.Cell, avoidBlocked, avoidOccupied bool) []geom.Cell {
	if !f.maps.IsInMap(f.mapID, from.X, from.Y) || !f.maps.IsInMap(f.mapID, to.X, to.Y) {
		return nil
	}
	if from == to {
		return []geom.Cell{from}
	}
	if avoidBlocked && !f.maps.IsGround(f.mapID, to.X, to.Y) {
		return nil
	}

	step := f.maxStep()
	steps := []int32{1}
	if step > 1 {
		steps = append(steps, int32(step))
	}

	open := &pathQueue{}
	heap.Init(open)
	seq := 0
	push := func(n *pathNode) {
		n.seq = seq
		seq++
		heap.Push(open, n)
	}
	push(&pathNode{cell: from, g: 0, h: heuristic(from, to, step)})
	gScore := map[geom.Cell]int{from: 0}
	closed := make(map[geom.Cell]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.cell]; seen {
			continue
		}
		closed[current.cell] = struct{}{}
		if current.cell == to {
			return reconstructPath(current)
		}
		if len(closed) >= f.maxNodes {
			return nil
		}

		for h := geom.Heading(0); h < 8; h++ {
			dx, dy := h.Delta()
			for _, s := range steps {
				next, ok := f.jump(current.cell, dx, dy, s, to, avoidBlocked, avoidOccupied)
				if !ok {
					break // a longer jump in the same heading crosses the same cells
				}
				if _, seen := closed[next]; seen {
					continue
				}
				cost := straightCost
				if dx != 0 && dy != 0 {
					cost = diagonalCost
				}
				tentative := current.g + hopCost + cost*int(s)
				if prev, ok := gScore[next]; ok && tentative >= prev {
					continue
				}
				gScore[next] = tentative
				push(&pathNode{
					cell:   next,
					g:      tentative,
					h:      heuristic(next, to, step),
					parent: current,
				})
			}
		}
	}
	return nil
}

// jump checks every cell of an s-cell run from c and returns its end.
func (f *Finder) jump(c geom.Cell, dx, dy, s int32, goal geom.Cell, avoidBlocked, avoidOccupied bool) (geom.Cell, bool) {
	var end geom.Cell
	for k := int32(1); k <= s; k++ {
		end = geom.Cell{X: c.X + dx*k, Y: c.Y + dy*k}
		if !f.maps.IsInMap(f.mapID, end.X, end.Y) {
			return end, false
		}
		if avoidBlocked && !f.maps.IsGround(f.mapID, end.X, end.Y) {
			return end, false
		}
		if avoidOccupied && end != goal && f.maps.IsOccupied(f.mapID, end.X, end.Y) {
			return end, false
		}
	}
	return end, true
}

// heuristic: octile cell cost plus the minimum number of jumps left.
func heuristic(a, b geom.Cell, step int) int {
	dx := int(a.X - b.X)
	dy := int(a.Y - b.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	cells := straightCost*(hi-lo) + diagonalCost*lo
	hops := (hi + step - 1) / step
	return cells + hopCost*hops
}

func reconstructPath(end *pathNode) []geom.Cell {
	path := make([]geom.Cell, 0, 16)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}
