package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/l1jgo/motion/internal/geom"
)

func TestMoveIntent(t *testing.T) {
	i := Move(geom.C(0, 0), geom.C(3, 0), 120, true)

	assert.Equal(t, KindMove, i.Kind)
	assert.Equal(t, geom.East, i.Heading)
	assert.True(t, i.Mounted())
	assert.False(t, Move(geom.C(0, 0), geom.C(1, 0), 100, false).Mounted())
}

func TestAttackIntent_Node(t *testing.T) {
	i := Attack(geom.C(5, 6), 9001, 2, 80)
	n := i.Node()

	assert.Equal(t, KindAttack, n.Action)
	assert.Equal(t, int32(5), n.X)
	assert.Equal(t, int32(6), n.Y)
	assert.Equal(t, uint32(9001), n.AimUID)
	assert.Equal(t, int32(2), n.ActionParam)
	assert.Equal(t, int32(80), n.Speed)
}

func TestPickUpIntent_Node(t *testing.T) {
	n := PickUp(geom.C(1, 1), geom.C(1, 2), 40308).Node()

	assert.Equal(t, KindPickUp, n.Action)
	assert.Equal(t, geom.South, n.Heading)
	assert.Equal(t, int32(1), n.AimX)
	assert.Equal(t, int32(2), n.AimY)
	assert.Equal(t, int32(40308), n.ActionParam)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "MOVE", KindMove.String())
	assert.Equal(t, "SPELL", KindSpell.String())
	assert.Equal(t, "NONE", Kind(42).String())
	assert.Equal(t, "HORSERUN", MotionHorseRun.String())
}
