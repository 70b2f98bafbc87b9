package hero

import "github.com/l1jgo/motion/internal/geom"

// resolveHop asks the pathfinder for a route and returns the farthest cell
// of its first hop the hero can reach right now.
//
// With preflight the first hop is walked cell by cell toward path[1], always
// checking occupancy (even when avoidOccupied was off for planning), up to
// the hop length the path implies capped by the mount step; the last
// walkable cell wins. Without preflight path[1] is returned unchecked: the
// caller only wants to know whether a route exists.
func (h *Hero) resolveHop(from, to geom.Cell, avoidBlocked, avoidOccupied, preflight bool) (geom.Cell, error) {
	path := h.paths.FindPath(from, to, avoidBlocked, avoidOccupied)
	if len(path) < 2 {
		// no route, or already there
		return geom.Cell{}, failure(Unreachable, "resolve hop", from, to)
	}
	next := path[1]
	if !preflight {
		return next, nil
	}

	maxHop := geom.Classify(from, next).Steps()
	if maxHop <= 0 {
		return geom.Cell{}, failure(InvalidTier, "resolve hop", from, next)
	}
	if step := h.MaxStep(); maxHop > step {
		maxHop = step
	}

	dx, dy := geom.StepToward(from, next)
	reach := int32(0)
	for i := int32(1); i <= int32(maxHop); i++ {
		if !h.occ.CanMove(true, from.Add(dx*i, dy*i)) {
			break
		}
		reach = i
	}
	if reach == 0 {
		return geom.Cell{}, failure(TemporarilyBlocked, "resolve hop", from, next)
	}
	return from.Add(dx*reach, dy*reach), nil
}

// reachable is the relaxed probe used after a failed resolution: ground
// avoidance only, no occupancy, no preflight. It separates "blocked right
// now" from "no way there".
func (h *Hero) reachable(from, to geom.Cell) bool {
	_, err := h.resolveHop(from, to, true, false, false)
	return err == nil
}
