package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapInfo holds metadata for a single map, loaded from map_list.yaml.
type MapInfo struct {
	MapID  int16  `yaml:"map_id"`
	Name   string `yaml:"name"`
	StartX int32  `yaml:"start_x"`
	EndX   int32  `yaml:"end_x"`
	StartY int32  `yaml:"start_y"`
	EndY   int32  `yaml:"end_y"`
}

// mapEntry stores loaded tile data + metadata for one map.
type mapEntry struct {
	info   MapInfo
	tiles  []byte // flat array [x * height + y], row-major by X
	width  int32
	height int32
}

// MapDataTable provides tile walkability and the dynamic occupancy bit.
// Game loop only; no locking.
type MapDataTable struct {
	maps map[int16]*mapEntry
}

// Tile flag constants
const (
	tilePassableEast  byte = 0x01 // bit 0
	tilePassableNorth byte = 0x02 // bit 1
	tileImpassable    byte = 0x80 // bit 7: dynamic entity block
)

// TileOpen is the tile value for a cell passable from every side.
const TileOpen = tilePassableEast | tilePassableNorth

type mapListFile struct {
	Maps []MapInfo `yaml:"maps"`
}

func NewMapDataTable() *MapDataTable {
	return &MapDataTable{maps: make(map[int16]*mapEntry)}
}

// LoadMapData loads map metadata from YAML and tile data from text files.
// yamlPath: path to map_list.yaml
// tileDir: directory containing {mapid}.txt tile files
func LoadMapData(yamlPath, tileDir string) (*MapDataTable, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read map list %s: %w", yamlPath, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map list: %w", err)
	}

	table := NewMapDataTable()
	for _, info := range file.Maps {
		width := info.EndX - info.StartX + 1
		height := info.EndY - info.StartY + 1
		if width <= 0 || height <= 0 {
			continue
		}

		tiles, err := loadTileFile(tileDir, int(info.MapID), int(width), int(height))
		if err != nil {
			// a missing map file is not fatal
			continue
		}
		table.maps[info.MapID] = &mapEntry{
			info:   info,
			tiles:  tiles,
			width:  width,
			height: height,
		}
	}

	return table, nil
}

func loadTileFile(dir string, mapID, xSize, ySize int) ([]byte, error) {
	path := filepath.Join(dir, strconv.Itoa(mapID)+".txt")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTiles(f, xSize, ySize)
}

// ParseTiles reads a CSV tile grid: each line is a row (Y) of comma-separated
// byte values (X). Blank lines and lines starting with '#' are skipped.
// Missing cells stay 0 (blocked).
func ParseTiles(r io.Reader, xSize, ySize int) ([]byte, error) {
	// Allocate flat array: tiles[x * ySize + y]
	tiles := make([]byte, xSize*ySize)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	y := 0
	for scanner.Scan() && y < ySize {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		x := 0
		for _, tok := range strings.Split(line, ",") {
			if x >= xSize {
				break
			}
			val, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 16)
			if err != nil {
				val = 0
			}
			tiles[x*ySize+y] = byte(val)
			x++
		}
		y++
	}

	return tiles, scanner.Err()
}

// AddMap registers a map from already parsed tiles (see ParseTiles). A nil
// tiles slice makes every cell open.
func (t *MapDataTable) AddMap(info MapInfo, tiles []byte) error {
	width := info.EndX - info.StartX + 1
	height := info.EndY - info.StartY + 1
	if width <= 0 || height <= 0 {
		return fmt.Errorf("map %d: empty bounds", info.MapID)
	}
	size := int(width) * int(height)
	if tiles == nil {
		tiles = make([]byte, size)
		for i := range tiles {
			tiles[i] = TileOpen
		}
	}
	if len(tiles) != size {
		return fmt.Errorf("map %d: %d tiles for %dx%d", info.MapID, len(tiles), width, height)
	}
	t.maps[info.MapID] = &mapEntry{info: info, tiles: tiles, width: width, height: height}
	return nil
}

// Count returns the number of maps loaded with tile data.
func (t *MapDataTable) Count() int {
	return len(t.maps)
}

// GetInfo returns metadata for a map, or nil if not found.
func (t *MapDataTable) GetInfo(mapID int16) *MapInfo {
	e := t.maps[mapID]
	if e == nil {
		return nil
	}
	return &e.info
}

// accessTile returns the tile byte at world coordinates, or 0 if out of bounds.
func (t *MapDataTable) accessTile(mapID int16, x, y int32) byte {
	e := t.maps[mapID]
	if e == nil {
		return 0
	}
	lx := x - e.info.StartX
	ly := y - e.info.StartY
	if lx < 0 || lx >= e.width || ly < 0 || ly >= e.height {
		return 0
	}
	return e.tiles[int(lx)*int(e.height)+int(ly)]
}

// IsInMap checks if world coordinates are within the map bounds.
func (t *MapDataTable) IsInMap(mapID int16, x, y int32) bool {
	e := t.maps[mapID]
	if e == nil {
		return false
	}
	return e.info.StartX <= x && x <= e.info.EndX &&
		e.info.StartY <= y && y <= e.info.EndY
}

// IsGround reports whether the static tile at (x,y) can be stood on.
func (t *MapDataTable) IsGround(mapID int16, x, y int32) bool {
	tile := t.accessTile(mapID, x, y)
	return tile&tilePassableEast != 0 || tile&tilePassableNorth != 0
}

// IsOccupied reports the dynamic impassable flag.
func (t *MapDataTable) IsOccupied(mapID int16, x, y int32) bool {
	return t.accessTile(mapID, x, y)&tileImpassable != 0
}

// IsWalkable is ground and, when checkOccupant is set, not dynamically blocked.
func (t *MapDataTable) IsWalkable(mapID int16, x, y int32, checkOccupant bool) bool {
	if !t.IsGround(mapID, x, y) {
		return false
	}
	return !checkOccupant || !t.IsOccupied(mapID, x, y)
}

// SetImpassable sets or clears the dynamic impassable flag (entity blocking).
func (t *MapDataTable) SetImpassable(mapID int16, x, y int32, blocked bool) {
	e := t.maps[mapID]
	if e == nil {
		return
	}
	lx := x - e.info.StartX
	ly := y - e.info.StartY
	if lx < 0 || lx >= e.width || ly < 0 || ly >= e.height {
		return
	}
	idx := int(lx)*int(e.height) + int(ly)
	if blocked {
		e.tiles[idx] |= tileImpassable
	} else {
		e.tiles[idx] &^= tileImpassable
	}
}

// SetGround overwrites the static passability of a tile, keeping the dynamic bit.
func (t *MapDataTable) SetGround(mapID int16, x, y int32, open bool) {
	e := t.maps[mapID]
	if e == nil {
		return
	}
	lx := x - e.info.StartX
	ly := y - e.info.StartY
	if lx < 0 || lx >= e.width || ly < 0 || ly >= e.height {
		return
	}
	idx := int(lx)*int(e.height) + int(ly)
	dyn := e.tiles[idx] & tileImpassable
	if open {
		e.tiles[idx] = TileOpen | dyn
	} else {
		e.tiles[idx] = dyn
	}
}
