package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
)

func newMaps(t *testing.T) *data.MapDataTable {
	t.Helper()
	maps := data.NewMapDataTable()
	require.NoError(t, maps.AddMap(data.MapInfo{MapID: 4, StartX: 0, EndX: 15, StartY: 0, EndY: 15}, nil))
	return maps
}

func TestDirectory_Lifecycle(t *testing.T) {
	maps := newMaps(t)
	dir := NewDirectory(maps, 4)

	dir.Add(Entity{UID: 10, Name: "orc", Cell: geom.C(3, 3)})
	assert.Equal(t, 1, dir.Count())
	assert.True(t, maps.IsOccupied(4, 3, 3))

	c, ok := dir.Resolve(10)
	require.True(t, ok)
	assert.Equal(t, geom.C(3, 3), c)

	require.True(t, dir.Move(10, geom.C(4, 3)))
	assert.False(t, maps.IsOccupied(4, 3, 3))
	assert.True(t, maps.IsOccupied(4, 4, 3))
	assert.False(t, dir.Move(99, geom.C(1, 1)))

	dir.Kill(10)
	_, ok = dir.Resolve(10)
	assert.False(t, ok)
	assert.False(t, maps.IsOccupied(4, 4, 3))
	assert.NotNil(t, dir.Get(10))

	assert.NotNil(t, dir.Remove(10))
	assert.Nil(t, dir.Remove(10))
	assert.Equal(t, 0, dir.Count())
}

func TestDirectory_SharedTile(t *testing.T) {
	maps := newMaps(t)
	dir := NewDirectory(maps, 4)

	dir.Add(Entity{UID: 1, Cell: geom.C(5, 5)})
	dir.Add(Entity{UID: 2, Cell: geom.C(5, 5)})
	dir.Remove(1)
	assert.True(t, maps.IsOccupied(4, 5, 5), "second entity still holds the tile")
	dir.Move(2, geom.C(6, 5))
	assert.False(t, maps.IsOccupied(4, 5, 5))
}

func TestDirectory_ReAddMovesTile(t *testing.T) {
	maps := newMaps(t)
	dir := NewDirectory(maps, 4)

	dir.Add(Entity{UID: 1, Cell: geom.C(1, 1)})
	dir.Add(Entity{UID: 1, Cell: geom.C(2, 2)})
	assert.False(t, maps.IsOccupied(4, 1, 1))
	assert.True(t, maps.IsOccupied(4, 2, 2))
	assert.Equal(t, 1, dir.Count())
}

func TestGroundItems(t *testing.T) {
	g := NewGroundItems()

	a := g.Add(GroundItem{ItemID: 40308, Name: "adena", Cell: geom.C(2, 2)})
	b := g.Add(GroundItem{ID: 5, ItemID: 40010, Cell: geom.C(2, 2)})
	g.Add(GroundItem{ItemID: 1, Cell: geom.C(3, 3)})

	assert.Greater(t, a, int32(700_000_000))
	assert.Equal(t, int32(5), b)
	assert.Equal(t, 3, g.Count())

	at := g.At(geom.C(2, 2))
	require.Len(t, at, 2)
	assert.Equal(t, int32(5), at[0].ID)
	assert.Equal(t, []int32{5, a}, g.ItemIDsAt(geom.C(2, 2)))
	assert.Empty(t, g.ItemIDsAt(geom.C(9, 9)))

	assert.NotNil(t, g.Remove(a))
	assert.Nil(t, g.Get(a))
	assert.Len(t, g.At(geom.C(2, 2)), 1)
}
