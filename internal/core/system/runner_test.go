package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type probe struct {
	name  string
	phase Phase
	log   *[]string
}

func (p probe) Phase() Phase { return p.phase }

func (p probe) Update(time.Time) { *p.log = append(*p.log, p.name) }

func TestRunner_PhaseOrder(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(probe{"persist", PhasePersist, &got})
	r.Register(probe{"hero", PhaseUpdate, &got})
	r.Register(probe{"scenario", PhaseUpdate, &got})
	r.Register(probe{"input", PhaseInput, &got})
	r.Register(probe{"events", PhasePreUpdate, &got})
	assert.Equal(t, 5, r.Len())

	r.Tick(time.Now())
	assert.Equal(t, []string{"input", "events", "hero", "scenario", "persist"}, got)

	got = nil
	r.TickPhase(PhaseUpdate, time.Now())
	assert.Equal(t, []string{"hero", "scenario"}, got)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "update", PhaseUpdate.String())
	assert.Equal(t, "phase?", Phase(42).String())
}
