package system

import (
	"time"

	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/hero"
)

// AutoPickupSystem picks up whatever lies under an idle hero.
// Phase 3 (PostUpdate).
//
// Each item is reported once; it stays on the ground until the server
// deletes it, so later ticks must not report it again.
type AutoPickupSystem struct {
	hero     *hero.Hero
	items    hero.ItemSource
	reported map[int32]struct{}
}

func NewAutoPickupSystem(h *hero.Hero, items hero.ItemSource) *AutoPickupSystem {
	return &AutoPickupSystem{hero: h, items: items, reported: make(map[int32]struct{})}
}

func (s *AutoPickupSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *AutoPickupSystem) Update(_ time.Time) {
	s.hero.PickUpHere(s)
}

// ItemIDsAt implements hero.ItemSource over the unreported items.
func (s *AutoPickupSystem) ItemIDsAt(c geom.Cell) []int32 {
	var out []int32
	for _, id := range s.items.ItemIDsAt(c) {
		if _, ok := s.reported[id]; ok {
			continue
		}
		s.reported[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Reported returns how many distinct items were reported.
func (s *AutoPickupSystem) Reported() int { return len(s.reported) }
