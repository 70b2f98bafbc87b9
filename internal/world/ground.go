package world

import (
	"sort"
	"sync/atomic"

	"github.com/l1jgo/motion/internal/geom"
)

// groundItemIDCounter hands out local IDs for items the client spawns itself
// (scenarios, tests). Server-sent items carry their own IDs.
// Starts at 700_000_000 to stay clear of character/NPC object IDs.
var groundItemIDCounter atomic.Int32

func init() {
	groundItemIDCounter.Store(700_000_000)
}

// NextGroundItemID returns a unique object ID for a ground item.
func NextGroundItemID() int32 {
	return groundItemIDCounter.Add(1)
}

// GroundItem is an item lying on a cell.
type GroundItem struct {
	ID     int32 // ground object ID
	ItemID int32 // template ID
	Name   string
	Cell   geom.Cell
}

// GroundItems is the set of items the client currently sees on the ground.
type GroundItems struct {
	items map[int32]*GroundItem
}

func NewGroundItems() *GroundItems {
	return &GroundItems{items: make(map[int32]*GroundItem, 32)}
}

// Add stores the item; a zero ID gets a fresh one. Returns the ID used.
func (g *GroundItems) Add(it GroundItem) int32 {
	if it.ID == 0 {
		it.ID = NextGroundItemID()
	}
	item := it
	g.items[it.ID] = &item
	return it.ID
}

// Remove deletes the item with the given ground ID.
func (g *GroundItems) Remove(id int32) *GroundItem {
	it := g.items[id]
	if it != nil {
		delete(g.items, id)
	}
	return it
}

// At returns the items lying on c, ordered by ID.
func (g *GroundItems) At(c geom.Cell) []*GroundItem {
	var out []*GroundItem
	for _, it := range g.items {
		if it.Cell == c {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the item or nil.
func (g *GroundItems) Get(id int32) *GroundItem {
	return g.items[id]
}

func (g *GroundItems) Count() int {
	return len(g.items)
}

// ItemIDsAt returns the ground IDs of the items on c, ordered.
func (g *GroundItems) ItemIDsAt(c geom.Cell) []int32 {
	items := g.At(c)
	ids := make([]int32, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
