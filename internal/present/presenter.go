package present

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/hero"
	"github.com/l1jgo/motion/internal/scripting"
	"github.com/l1jgo/motion/internal/world"
)

// SpellBook describes spells by id.
type SpellBook interface {
	GetSpell(spellID int32) *scripting.SpellInfo
}

// Presenter turns atomic intents into motions on the hero and applies the
// local side effects (ground item pickup).
type Presenter struct {
	ground *world.GroundItems
	spells SpellBook
	log    *zap.Logger

	pickedUp int
}

func New(ground *world.GroundItems, log *zap.Logger) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Presenter{ground: ground, log: log}
}

// SetSpellBook lets spell scripts pick the cast animation.
func (p *Presenter) SetSpellBook(b SpellBook) { p.spells = b }

// PickedUp returns how many ground items were removed locally.
func (p *Presenter) PickedUp() int { return p.pickedUp }

// Present implements hero.Presenter.
func (p *Presenter) Present(h *hero.Hero, in action.Intent) error {
	pos := h.Position()
	switch in.Kind {
	case action.KindMove:
		if in.From != pos {
			return fmt.Errorf("move starts at %v, hero at %v", in.From, pos)
		}
		h.PushMotion(action.Motion{
			Kind:    moveKind(in.From, in.To, h.Mounted()),
			Speed:   in.Speed,
			Heading: geom.HeadingOf(in.From, in.To),
			From:    in.From,
			To:      in.To,
			Serves:  action.KindMove,
		})

	case action.KindAttack:
		h.PushMotion(action.Motion{
			Kind:    action.MotionAttack,
			Speed:   in.Speed,
			Heading: geom.HeadingOf(pos, in.To),
			From:    pos,
			To:      pos,
			Serves:  action.KindAttack,
		})

	case action.KindPickUp:
		// no motion: the item leaves the ground right away and the server
		// confirms or pulls it back later
		if p.ground == nil {
			return nil
		}
		it := p.ground.Get(in.Param)
		if it == nil {
			p.log.Debug("pickup of unknown ground item", zap.Int32("id", in.Param))
			return nil
		}
		if it.Cell != pos {
			return fmt.Errorf("pickup item %d at %v, hero at %v", in.Param, it.Cell, pos)
		}
		p.ground.Remove(in.Param)
		p.pickedUp++
		p.log.Debug("picked up", zap.Int32("id", it.ID), zap.String("name", it.Name))

	case action.KindSpell:
		kind := action.MotionSpell
		if p.spells != nil {
			if info := p.spells.GetSpell(in.Param); info != nil && info.Motion == "attack" {
				kind = action.MotionAttack
			}
		}
		h.PushMotion(action.Motion{
			Kind:    kind,
			Speed:   in.Speed,
			Heading: geom.HeadingOf(pos, in.To),
			From:    pos,
			To:      pos,
			Serves:  action.KindSpell,
		})

	default:
		return fmt.Errorf("cannot present %s", in.Kind)
	}
	return nil
}

// moveKind picks the animation: a single cell is a walk, a longer jump a run.
func moveKind(from, to geom.Cell, mounted bool) action.MotionKind {
	long := geom.Classify(from, to).Steps() > 1
	switch {
	case mounted && long:
		return action.MotionHorseRun
	case mounted:
		return action.MotionHorseWalk
	case long:
		return action.MotionRun
	default:
		return action.MotionWalk
	}
}
