package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain server packets
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: scenario script + hero scheduler
	PhasePostUpdate              // 3: auto pickup
	PhasePersist                 // 4: journal flush
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhasePersist:
		return "persist"
	default:
		return "phase?"
	}
}

// System is one step of the game loop.
type System interface {
	Phase() Phase
	Update(now time.Time)
}
