package action

import (
	"fmt"

	"github.com/l1jgo/motion/internal/geom"
)

// Kind identifies the intent variant. The numeric values go on the wire
// as CM_ACTION's action byte, so do not reorder.
type Kind uint8

const (
	KindNone Kind = iota
	KindMove
	KindAttack
	KindPickUp
	KindSpell
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "MOVE"
	case KindAttack:
		return "ATTACK"
	case KindPickUp:
		return "PICKUP"
	case KindSpell:
		return "SPELL"
	default:
		return "NONE"
	}
}

// DefaultSpeed is the speed used for approach moves the engine inserts on
// its own (attack / pickup approach).
const DefaultSpeed = 100

// Intent is a high-level, unverified command for the hero. It is one struct
// tagged by Kind; field meaning per kind:
//
//	Move    From -> To, Param = 1 when mounted
//	Attack  From (for server verification), AimUID, Param = target kind, To = attack cell once known
//	PickUp  From, To = item cell, Param = item id
//	Spell   From, To, AimUID, Param = spell id
type Intent struct {
	Kind    Kind
	Speed   int32
	Heading geom.Heading
	From    geom.Cell
	To      geom.Cell
	AimUID  uint32
	Param   int32
}

func Move(from, to geom.Cell, speed int32, mounted bool) Intent {
	var p int32
	if mounted {
		p = 1
	}
	return Intent{
		Kind:    KindMove,
		Speed:   speed,
		Heading: geom.HeadingOf(from, to),
		From:    from,
		To:      to,
		Param:   p,
	}
}

func Attack(from geom.Cell, aimUID uint32, targetKind int32, speed int32) Intent {
	return Intent{
		Kind:   KindAttack,
		Speed:  speed,
		From:   from,
		To:     from,
		AimUID: aimUID,
		Param:  targetKind,
	}
}

func PickUp(from, at geom.Cell, itemID int32) Intent {
	return Intent{
		Kind:    KindPickUp,
		Speed:   DefaultSpeed,
		Heading: geom.HeadingOf(from, at),
		From:    from,
		To:      at,
		Param:   itemID,
	}
}

func Spell(from, at geom.Cell, aimUID uint32, spellID int32) Intent {
	return Intent{
		Kind:    KindSpell,
		Speed:   DefaultSpeed,
		Heading: geom.HeadingOf(from, at),
		From:    from,
		To:      at,
		AimUID:  aimUID,
		Param:   spellID,
	}
}

// Mounted reports the mount flag of a Move.
func (i Intent) Mounted() bool { return i.Kind == KindMove && i.Param != 0 }

func (i Intent) String() string {
	switch i.Kind {
	case KindAttack:
		return fmt.Sprintf("%s %v -> uid %d", i.Kind, i.From, i.AimUID)
	case KindPickUp:
		return fmt.Sprintf("%s %v -> %v item %d", i.Kind, i.From, i.To, i.Param)
	default:
		return fmt.Sprintf("%s %v -> %v", i.Kind, i.From, i.To)
	}
}

// ActionNode is the flat record reported to the server for verification.
type ActionNode struct {
	Action      Kind
	Speed       int32
	Heading     geom.Heading
	X, Y        int32
	AimX, AimY  int32
	AimUID      uint32
	ActionParam int32
}

// Node flattens an intent for the report channel.
func (i Intent) Node() ActionNode {
	return ActionNode{
		Action:      i.Kind,
		Speed:       i.Speed,
		Heading:     i.Heading,
		X:           i.From.X,
		Y:           i.From.Y,
		AimX:        i.To.X,
		AimY:        i.To.Y,
		AimUID:      i.AimUID,
		ActionParam: i.Param,
	}
}
