package handler

import (
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/core/event"
	"github.com/l1jgo/motion/internal/hero"
	"github.com/l1jgo/motion/internal/net/packet"
	"github.com/l1jgo/motion/internal/world"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Hero      *hero.Hero
	Directory *world.Directory
	Ground    *world.GroundItems
	Bus       *event.Bus
	Log       *zap.Logger
}

// RegisterAll registers all server packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	reg.Register(packet.S_OPCODE_PULLBACK, func(r *packet.Reader) error {
		return HandlePullBack(r, deps)
	})

	// entities in view
	reg.Register(packet.S_OPCODE_PUTOBJECT, func(r *packet.Reader) error {
		return HandlePutObject(r, deps)
	})
	reg.Register(packet.S_OPCODE_MOVEOBJECT, func(r *packet.Reader) error {
		return HandleMoveObject(r, deps)
	})
	reg.Register(packet.S_OPCODE_REMOVEOBJECT, func(r *packet.Reader) error {
		return HandleRemoveObject(r, deps)
	})

	// ground items
	reg.Register(packet.S_OPCODE_DROPITEM, func(r *packet.Reader) error {
		return HandleDropItem(r, deps)
	})
	reg.Register(packet.S_OPCODE_DELETEITEM, func(r *packet.Reader) error {
		return HandleDeleteItem(r, deps)
	})
}
