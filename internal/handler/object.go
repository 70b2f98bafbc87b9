package handler

import (
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/net/packet"
	"github.com/l1jgo/motion/internal/world"
)

// HandlePutObject adds an entity that came into view.
func HandlePutObject(r *packet.Reader, deps *Deps) error {
	o, err := packet.ReadPutObject(r)
	if err != nil {
		return err
	}
	if o.UID == deps.Hero.UID() {
		return nil // the hero is not its own obstacle
	}
	deps.Directory.Add(world.Entity{UID: o.UID, Name: o.Name, Kind: o.Kind, Cell: o.Cell})
	return nil
}

// HandleMoveObject moves a known entity.
func HandleMoveObject(r *packet.Reader, deps *Deps) error {
	uid, c, err := packet.ReadMoveObject(r)
	if err != nil {
		return err
	}
	if !deps.Directory.Move(uid, c) {
		deps.Log.Debug("move for unknown object", zap.Uint32("uid", uid))
	}
	return nil
}

// HandleRemoveObject forgets an entity that left view.
func HandleRemoveObject(r *packet.Reader, deps *Deps) error {
	uid, err := packet.ReadObjectID(r)
	if err != nil {
		return err
	}
	deps.Directory.Remove(uid)
	return nil
}
