package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/hero"
	"github.com/l1jgo/motion/internal/world"
)

// ScenarioSystem feeds scripted commands to the hero as if the player had
// clicked them. Phase 2 (Update), registered before HeroSystem.
type ScenarioSystem struct {
	sc   *data.Scenario
	hero *hero.Hero
	dir  *world.Directory
	log  *zap.Logger

	tick int
	next int // index of the next step to feed
}

func NewScenarioSystem(sc *data.Scenario, h *hero.Hero, dir *world.Directory, log *zap.Logger) *ScenarioSystem {
	return &ScenarioSystem{sc: sc, hero: h, dir: dir, log: log}
}

func (s *ScenarioSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScenarioSystem) Update(_ time.Time) {
	for s.next < len(s.sc.Steps) && s.sc.Steps[s.next].AtTick <= s.tick {
		s.feed(s.sc.Steps[s.next])
		s.next++
	}
	s.tick++
}

// Done reports whether every step was fed and the hero went idle, or the
// tick limit ran out.
func (s *ScenarioSystem) Done() bool {
	if s.tick >= s.sc.MaxTicks {
		return true
	}
	return s.next >= len(s.sc.Steps) && s.hero.IsIdle()
}

// Ticks returns how many ticks the scenario has seen.
func (s *ScenarioSystem) Ticks() int { return s.tick }

func (s *ScenarioSystem) feed(st data.ScenarioStep) {
	pos := s.hero.Position()
	speed := st.Speed
	if speed <= 0 {
		speed = s.hero.DefaultSpeed()
	}

	var in action.Intent
	switch st.Action {
	case "move":
		in = action.Move(pos, geom.C(st.X, st.Y), speed, s.hero.Mounted())
	case "attack":
		var kind int32
		if e := s.dir.Get(st.Target); e != nil {
			kind = e.Kind
		}
		in = action.Attack(pos, st.Target, kind, speed)
	case "pickup":
		in = action.PickUp(pos, geom.C(st.X, st.Y), st.Param)
	case "spell":
		at := geom.C(st.X, st.Y)
		if st.Target != 0 {
			if c, ok := s.dir.Resolve(st.Target); ok {
				at = c
			}
		}
		in = action.Spell(pos, at, st.Target, st.Param)
	case "mount", "dismount":
		s.hero.SetMounted(st.Action == "mount")
		s.log.Info("坐騎狀態變更", zap.Bool("mounted", s.hero.Mounted()), zap.Int("tick", s.tick))
		return
	default:
		s.log.Warn("unknown scenario action", zap.String("action", st.Action))
		return
	}

	s.log.Debug("scenario command", zap.Int("tick", s.tick), zap.Stringer("intent", in))
	s.hero.Enqueue(in)
}
