package hero

import (
	"errors"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

// Outcome tags a RefineResult.
type Outcome uint8

const (
	// OutcomeAtomic: Head is ready to report and present.
	OutcomeAtomic Outcome = iota
	// OutcomeSplit: Head is atomic, Tail is the remainder to refine later.
	OutcomeSplit
	// OutcomeFail: Err says why and whether the queue survives.
	OutcomeFail
)

// RefineResult is what a decomposer makes of the head intent. Decomposers
// never touch the intent queue; the scheduler applies the result.
type RefineResult struct {
	Outcome Outcome
	Head    action.Intent
	Tail    action.Intent
	Err     *DecompError
}

func atomicResult(i action.Intent) RefineResult {
	return RefineResult{Outcome: OutcomeAtomic, Head: i}
}

func splitResult(head, tail action.Intent) RefineResult {
	return RefineResult{Outcome: OutcomeSplit, Head: head, Tail: tail}
}

func failResult(err *DecompError) RefineResult {
	return RefineResult{Outcome: OutcomeFail, Err: err}
}

// refine dispatches on the intent kind.
func (h *Hero) refine(in action.Intent) RefineResult {
	switch in.Kind {
	case action.KindMove:
		return h.refineMove(in)
	case action.KindAttack:
		return h.refineRanged(in, geom.TwoCell)
	case action.KindPickUp:
		return h.refinePickUp(in)
	case action.KindSpell:
		return h.refineSpell(in)
	default:
		return failResult(failure(FatalDesync, "unknown intent "+in.Kind.String(), in.From, in.To))
	}
}

// refineMove cuts a move into the next reachable hop plus the remainder.
func (h *Hero) refineMove(in action.Intent) RefineResult {
	from, to := in.From, in.To

	if !h.occ.CanMove(false, from) {
		return failResult(failure(FatalDesync, "move from invalid grid", from, to))
	}
	if geom.Classify(from, to) == geom.Zero {
		return failResult(failure(FatalDesync, "move to own grid", from, to))
	}

	destOK := h.occ.CanMove(false, to)
	mid, err := h.resolveHop(from, to, true, true, true)
	if err != nil {
		if errors.Is(err, ErrInvalidTier) {
			return failResult(err.(*DecompError))
		}
		if !destOK {
			return failResult(failure(Unreachable, "move to invalid grid", from, to))
		}
		// the destination is fine but no ground route: walk straight at it
		// as far as possible
		mid, err = h.resolveHop(from, to, false, true, true)
		if err != nil {
			kind := Unreachable
			if errors.Is(err, ErrInvalidTier) {
				kind = InvalidTier
			}
			return failResult(failure(kind, "move first step illegal", from, to))
		}
	}

	if mid == to {
		return atomicResult(in)
	}
	return splitResult(
		action.Move(from, mid, in.Speed, in.Mounted()),
		action.Move(mid, to, in.Speed, in.Mounted()),
	)
}

// refineRanged handles attacks and ranged spells: act in place when the
// target is within reach, otherwise approach one hop and try again.
// The attacker cell is the hero's own position; the intent's From only
// travels to the server for verification.
func (h *Hero) refineRanged(in action.Intent, reach geom.RangeTier) RefineResult {
	from := h.Position()
	target, ok := h.dir.Resolve(in.AimUID)
	if !ok {
		return failResult(failure(FatalDesync, in.Kind.String()+" target gone", from, from))
	}

	act := in
	act.From = from
	act.To = target
	act.Heading = geom.HeadingOf(from, target)

	tier := geom.Classify(from, target)
	switch {
	case tier == geom.Zero:
		return failResult(failure(FatalDesync, in.Kind.String()+" own grid", from, target))
	case tier.Within(reach):
		return atomicResult(act)
	}

	hop, err := h.resolveHop(from, target, true, true, true)
	if err != nil {
		if errors.Is(err, ErrInvalidTier) {
			return failResult(err.(*DecompError))
		}
		if h.reachable(from, target) {
			return failResult(failure(TemporarilyBlocked, in.Kind.String()+" approach occupied", from, target))
		}
		return failResult(failure(Unreachable, in.Kind.String()+" no route", from, target))
	}

	if hop == target {
		// one hop lands on the target itself; stop one cell short instead
		hop = geom.FrontCell(from, geom.HeadingOf(from, target), 1)
	}

	next := in
	next.From = hop
	next.To = target
	next.Heading = geom.HeadingOf(hop, target)
	return splitResult(action.Move(from, hop, h.opts.DefaultSpeed, h.mounted), next)
}

// refinePickUp walks to the item cell; standing on it makes the pickup atomic.
func (h *Hero) refinePickUp(in action.Intent) RefineResult {
	from := h.Position()
	at := in.To

	// ground only: the hero holds its own cell, and another entity standing
	// on the item is a transient block, not a desync
	if !h.occ.CanMove(false, from) {
		return failResult(failure(FatalDesync, "pickup from invalid grid", from, at))
	}
	if !h.occ.CanMove(false, at) {
		return failResult(failure(FatalDesync, "pickup at invalid grid", from, at))
	}

	pick := in
	pick.From = from
	if geom.Classify(from, at) == geom.Zero {
		return atomicResult(pick)
	}

	hop, err := h.resolveHop(from, at, true, true, true)
	if err != nil {
		if errors.Is(err, ErrInvalidTier) {
			return failResult(err.(*DecompError))
		}
		if h.reachable(from, at) {
			return failResult(failure(TemporarilyBlocked, "pickup approach occupied", from, at))
		}
		return failResult(failure(Unreachable, "pickup no route", from, at))
	}

	pick.From = hop
	pick.Heading = geom.HeadingOf(hop, at)
	return splitResult(action.Move(from, hop, h.opts.DefaultSpeed, h.mounted), pick)
}

// refineSpell passes spells through unchanged. A spell aimed at an entity
// whose script declares a range reuses the attack approach logic.
func (h *Hero) refineSpell(in action.Intent) RefineResult {
	if h.spells != nil && in.AimUID != 0 {
		if tier := h.spells.SpellRange(in.Param); tier.Within(geom.ThreeCell) {
			return h.refineRanged(in, tier)
		}
	}
	return atomicResult(in)
}

// apply pops the head and writes the refinement back to the front of the
// queue. It reports whether an atomic intent is now at the head.
func (h *Hero) apply(orig action.Intent, res RefineResult) bool {
	h.intents.PopFront()
	switch res.Outcome {
	case OutcomeAtomic:
		h.intents.PushFront(res.Head)
		return true
	case OutcomeSplit:
		h.intents.PushFront(res.Tail)
		h.intents.PushFront(res.Head)
		return true
	}
	if res.Err.Kind.Clears() {
		h.intents.Clear()
	} else {
		h.intents.PushFront(orig)
	}
	return false
}
