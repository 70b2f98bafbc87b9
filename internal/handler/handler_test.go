package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/core/event"
	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/hero"
	"github.com/l1jgo/motion/internal/nav"
	"github.com/l1jgo/motion/internal/net/packet"
	"github.com/l1jgo/motion/internal/present"
	"github.com/l1jgo/motion/internal/world"
)

type nopReporter struct{}

func (nopReporter) Report(action.ActionNode) {}

func setup(t *testing.T) (*packet.Registry, *Deps, *data.MapDataTable) {
	t.Helper()
	maps := data.NewMapDataTable()
	require.NoError(t, maps.AddMap(data.MapInfo{MapID: 4, StartX: 0, EndX: 63, StartY: 0, EndY: 63}, nil))
	finder := nav.NewFinder(maps, 4)
	dir := world.NewDirectory(maps, 4)
	ground := world.NewGroundItems()
	bus := event.NewBus()

	h, err := hero.New(hero.Options{UID: 1, Start: geom.C(10, 10)}, hero.Deps{
		Paths:     finder,
		Occupancy: finder,
		Directory: dir,
		Presenter: present.New(ground, nil),
		Reporter:  nopReporter{},
		Bus:       bus,
	}, nil)
	require.NoError(t, err)

	deps := &Deps{Hero: h, Directory: dir, Ground: ground, Bus: bus, Log: zap.NewNop()}
	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	return reg, deps, maps
}

func TestPullBack(t *testing.T) {
	reg, deps, _ := setup(t)
	deps.Hero.Enqueue(action.Move(geom.C(10, 10), geom.C(20, 10), 100, false))

	// someone else's correction is ignored
	require.NoError(t, reg.Dispatch(packet.BuildPullBack(packet.PullBack{UID: 2, Cell: geom.C(1, 1)})))
	assert.False(t, deps.Hero.IsIdle())

	require.NoError(t, reg.Dispatch(packet.BuildPullBack(packet.PullBack{UID: 1, Cell: geom.C(9, 9), Reason: "移動過快"})))
	assert.True(t, deps.Hero.IsIdle())
	assert.Equal(t, geom.C(9, 9), deps.Hero.Position())

	var got []event.PulledBack
	event.Subscribe(deps.Bus, func(e event.PulledBack) { got = append(got, e) })
	deps.Bus.SwapBuffers()
	deps.Bus.DispatchAll()
	require.Len(t, got, 1)
	assert.Equal(t, "移動過快", got[0].Reason)
}

func TestObjects(t *testing.T) {
	reg, deps, maps := setup(t)

	require.NoError(t, reg.Dispatch(packet.BuildPutObject(packet.PutObject{UID: 50, Cell: geom.C(12, 10), Kind: 45, Name: "orc"})))
	require.NoError(t, reg.Dispatch(packet.BuildPutObject(packet.PutObject{UID: 1, Cell: geom.C(10, 10)})))
	assert.Equal(t, 1, deps.Directory.Count(), "hero is not tracked as an obstacle")
	assert.True(t, maps.IsOccupied(4, 12, 10))

	require.NoError(t, reg.Dispatch(packet.BuildMoveObject(50, geom.C(13, 10))))
	c, ok := deps.Directory.Resolve(50)
	require.True(t, ok)
	assert.Equal(t, geom.C(13, 10), c)
	assert.False(t, maps.IsOccupied(4, 12, 10))

	require.NoError(t, reg.Dispatch(packet.BuildMoveObject(99, geom.C(1, 1))))

	require.NoError(t, reg.Dispatch(packet.BuildRemoveObject(packet.S_OPCODE_REMOVEOBJECT, 50)))
	_, ok = deps.Directory.Resolve(50)
	assert.False(t, ok)
	assert.False(t, maps.IsOccupied(4, 13, 10))
}

func TestGroundItems(t *testing.T) {
	reg, deps, _ := setup(t)

	require.NoError(t, reg.Dispatch(packet.BuildDropItem(packet.DropItem{ID: 800, ItemID: 40308, Cell: geom.C(10, 10), Name: "金幣"})))
	assert.Equal(t, []int32{800}, deps.Ground.ItemIDsAt(geom.C(10, 10)))

	require.NoError(t, reg.Dispatch(packet.BuildRemoveObject(packet.S_OPCODE_DELETEITEM, 800)))
	assert.Zero(t, deps.Ground.Count())

	assert.Error(t, reg.Dispatch([]byte{packet.S_OPCODE_DROPITEM, 0, 0}))
}
