package data

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	writeFile(t, path, `
name: hunt
entities:
  - uid: 500
    name: goblin
    kind: 1
    x: 6
    y: 2
items:
  - id: 700000001
    item_id: 40308
    name: adena
    x: 3
    y: 3
steps:
  - at_tick: 0
    action: move
    x: 5
    y: 0
  - at_tick: 10
    action: attack
    target: 500
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "hunt", sc.Name)
	require.Len(t, sc.Entities, 1)
	assert.Equal(t, uint32(500), sc.Entities[0].UID)
	require.Len(t, sc.Items, 1)
	assert.Equal(t, int32(40308), sc.Items[0].ItemID)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, "attack", sc.Steps[1].Action)
	assert.Equal(t, 200, sc.MaxTicks)
}

func TestLoadScenario_Invalid(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.yaml")
	writeFile(t, unknown, "steps:\n  - at_tick: 0\n    action: dance\n")
	_, err := LoadScenario(unknown)
	assert.ErrorContains(t, err, "unknown action")

	backwards := filepath.Join(dir, "backwards.yaml")
	writeFile(t, backwards, "steps:\n  - at_tick: 5\n    action: move\n  - at_tick: 1\n    action: move\n")
	_, err = LoadScenario(backwards)
	assert.ErrorContains(t, err, "goes backwards")
}

func TestShippedData(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("..", "..", "data", "yaml", "scenario.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, sc.Steps)

	maps, err := LoadMapData(filepath.Join("..", "..", "data", "yaml", "map_list.yaml"), filepath.Join("..", "..", "map"))
	require.NoError(t, err)
	require.NotNil(t, maps.GetInfo(4))
	assert.True(t, maps.IsWalkable(4, 32, 32, true))
	assert.False(t, maps.IsWalkable(4, 40, 31, false), "wall")
	assert.True(t, maps.IsWalkable(4, 40, 32, false), "gap in the wall")
	for _, e := range sc.Entities {
		assert.True(t, maps.IsWalkable(4, e.X, e.Y, false), e.Name)
	}
}
