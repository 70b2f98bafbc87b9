package handler

import (
	"github.com/l1jgo/motion/internal/net/packet"
	"github.com/l1jgo/motion/internal/world"
)

// HandleDropItem adds an item to the ground.
func HandleDropItem(r *packet.Reader, deps *Deps) error {
	d, err := packet.ReadDropItem(r)
	if err != nil {
		return err
	}
	deps.Ground.Add(world.GroundItem{ID: d.ID, ItemID: d.ItemID, Name: d.Name, Cell: d.Cell})
	return nil
}

// HandleDeleteItem removes a ground item someone else picked up.
func HandleDeleteItem(r *packet.Reader, deps *Deps) error {
	id, err := packet.ReadObjectID(r)
	if err != nil {
		return err
	}
	deps.Ground.Remove(int32(id))
	return nil
}
