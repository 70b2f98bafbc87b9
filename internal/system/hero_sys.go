package system

import (
	"time"

	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/hero"
)

// HeroSystem runs one scheduler round of the hero per tick. Phase 2 (Update),
// registered after the scenario so a fresh command is decomposed the same tick.
type HeroSystem struct {
	hero *hero.Hero

	ticks  int
	failed int
}

func NewHeroSystem(h *hero.Hero) *HeroSystem {
	return &HeroSystem{hero: h}
}

func (s *HeroSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *HeroSystem) Update(now time.Time) {
	s.ticks++
	if !s.hero.Tick(now) {
		s.failed++
	}
}

// Stats returns how many ticks ran and how many of them reported failure.
func (s *HeroSystem) Stats() (ticks, failed int) { return s.ticks, s.failed }
