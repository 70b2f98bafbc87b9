package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMapData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "map_list.yaml"), `
maps:
  - map_id: 7
    name: test field
    start_x: 100
    end_x: 103
    start_y: 200
    end_y: 202
  - map_id: 8
    name: no tile file
    start_x: 0
    end_x: 1
    start_y: 0
    end_y: 1
`)
	writeFile(t, filepath.Join(dir, "map", "7.txt"), strings.Join([]string{
		"# x 100..103",
		"3,3,0,3",
		"3,1,2,3",
		"",
		"3,3,3,128",
	}, "\n"))

	table, err := LoadMapData(filepath.Join(dir, "map_list.yaml"), filepath.Join(dir, "map"))
	require.NoError(t, err)

	assert.Equal(t, 1, table.Count())
	require.NotNil(t, table.GetInfo(7))
	assert.Equal(t, "test field", table.GetInfo(7).Name)
	assert.Nil(t, table.GetInfo(8))

	assert.True(t, table.IsGround(7, 100, 200))
	assert.False(t, table.IsGround(7, 102, 200))
	assert.True(t, table.IsGround(7, 101, 201))  // east only
	assert.True(t, table.IsGround(7, 102, 201))  // north only
	assert.False(t, table.IsGround(7, 103, 202)) // dynamic bit only
	assert.False(t, table.IsGround(7, 99, 200))  // out of bounds
}

func TestLoadMapData_MissingList(t *testing.T) {
	_, err := LoadMapData(filepath.Join(t.TempDir(), "nope.yaml"), "map")
	assert.Error(t, err)
}

func TestOccupancyBit(t *testing.T) {
	table := NewMapDataTable()
	require.NoError(t, table.AddMap(MapInfo{MapID: 1, StartX: 0, EndX: 9, StartY: 0, EndY: 9}, nil))

	assert.True(t, table.IsWalkable(1, 4, 4, true))
	table.SetImpassable(1, 4, 4, true)
	assert.True(t, table.IsOccupied(1, 4, 4))
	assert.True(t, table.IsWalkable(1, 4, 4, false))
	assert.False(t, table.IsWalkable(1, 4, 4, true))

	table.SetGround(1, 4, 4, false)
	assert.True(t, table.IsOccupied(1, 4, 4), "dynamic bit survives ground change")
	assert.False(t, table.IsWalkable(1, 4, 4, false))

	table.SetImpassable(1, 4, 4, false)
	table.SetGround(1, 4, 4, true)
	assert.True(t, table.IsWalkable(1, 4, 4, true))

	// out of range writes are ignored
	table.SetImpassable(1, 40, 40, true)
	table.SetImpassable(2, 0, 0, true)
	assert.False(t, table.IsOccupied(1, 40, 40))
}

func TestAddMap_BadSize(t *testing.T) {
	table := NewMapDataTable()
	err := table.AddMap(MapInfo{MapID: 1, StartX: 0, EndX: 1, StartY: 0, EndY: 1}, []byte{3})
	assert.Error(t, err)
	err = table.AddMap(MapInfo{MapID: 2, StartX: 5, EndX: 1}, nil)
	assert.Error(t, err)
}

func TestIsInMap(t *testing.T) {
	table := NewMapDataTable()
	require.NoError(t, table.AddMap(MapInfo{MapID: 1, StartX: 10, EndX: 19, StartY: 10, EndY: 19}, nil))
	assert.True(t, table.IsInMap(1, 10, 19))
	assert.False(t, table.IsInMap(1, 9, 10))
	assert.False(t, table.IsInMap(3, 10, 10))
}
