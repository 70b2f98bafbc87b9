package action

import (
	"fmt"

	"github.com/l1jgo/motion/internal/geom"
)

// MotionKind is the animation a Motion plays.
type MotionKind uint8

const (
	MotionStand MotionKind = iota
	MotionWalk
	MotionRun
	MotionHorseWalk
	MotionHorseRun
	MotionAttack
	MotionSpell
)

func (k MotionKind) String() string {
	switch k {
	case MotionStand:
		return "STAND"
	case MotionWalk:
		return "WALK"
	case MotionRun:
		return "RUN"
	case MotionHorseWalk:
		return "HORSEWALK"
	case MotionHorseRun:
		return "HORSERUN"
	case MotionAttack:
		return "ATTACK"
	case MotionSpell:
		return "SPELL"
	default:
		return fmt.Sprintf("MOTION(%d)", uint8(k))
	}
}

// Motion is an atomic, single-hop, single-direction unit that can be
// animated right away. From == To for in-place motions.
type Motion struct {
	Kind    MotionKind
	Speed   int32
	Heading geom.Heading
	From    geom.Cell
	To      geom.Cell
	Serves  Kind
}

// Stand returns an idle motion at c facing h.
func Stand(c geom.Cell, h geom.Heading) Motion {
	return Motion{Kind: MotionStand, Heading: h, From: c, To: c}
}

// Moving reports whether the motion changes cell.
func (m Motion) Moving() bool { return m.From != m.To }

func (m Motion) String() string {
	return fmt.Sprintf("%s %v -> %v h%d", m.Kind, m.From, m.To, m.Heading)
}
