package world

import (
	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
)

// Entity is another creature the client knows about (monster, player, NPC).
type Entity struct {
	UID  uint32
	Name string
	Kind int32
	Cell geom.Cell
	Dead bool
}

// Directory resolves server UIDs to live entities and keeps the map's
// dynamic impassable bit in step with their cells.
// Accessed only from the game loop goroutine; no locks needed.
type Directory struct {
	maps     *data.MapDataTable
	mapID    int16
	entities map[uint32]*Entity
}

func NewDirectory(maps *data.MapDataTable, mapID int16) *Directory {
	return &Directory{
		maps:     maps,
		mapID:    mapID,
		entities: make(map[uint32]*Entity, 64),
	}
}

// Add places an entity and blocks its tile. An existing UID is replaced.
func (d *Directory) Add(e Entity) {
	if old := d.entities[e.UID]; old != nil {
		d.release(old.Cell, e.UID)
	}
	ent := e
	d.entities[e.UID] = &ent
	if !ent.Dead {
		d.maps.SetImpassable(d.mapID, ent.Cell.X, ent.Cell.Y, true)
	}
}

// Move relocates an entity. Returns false for an unknown UID.
func (d *Directory) Move(uid uint32, to geom.Cell) bool {
	e := d.entities[uid]
	if e == nil {
		return false
	}
	if !e.Dead {
		d.release(e.Cell, uid)
		d.maps.SetImpassable(d.mapID, to.X, to.Y, true)
	}
	e.Cell = to
	return true
}

// Kill keeps the entity known but frees its tile; dead entities do not
// resolve.
func (d *Directory) Kill(uid uint32) {
	e := d.entities[uid]
	if e == nil || e.Dead {
		return
	}
	e.Dead = true
	d.release(e.Cell, uid)
}

// Remove forgets the entity and frees its tile.
func (d *Directory) Remove(uid uint32) *Entity {
	e := d.entities[uid]
	if e == nil {
		return nil
	}
	delete(d.entities, uid)
	if !e.Dead {
		d.release(e.Cell, uid)
	}
	return e
}

// release clears the tile unless another live entity still stands on it.
func (d *Directory) release(c geom.Cell, except uint32) {
	for uid, other := range d.entities {
		if uid != except && !other.Dead && other.Cell == c {
			return
		}
	}
	d.maps.SetImpassable(d.mapID, c.X, c.Y, false)
}

// Resolve returns the live entity's current cell.
func (d *Directory) Resolve(uid uint32) (geom.Cell, bool) {
	e := d.entities[uid]
	if e == nil || e.Dead {
		return geom.Cell{}, false
	}
	return e.Cell, true
}

// Get returns the entity or nil.
func (d *Directory) Get(uid uint32) *Entity {
	return d.entities[uid]
}

func (d *Directory) Count() int {
	return len(d.entities)
}
