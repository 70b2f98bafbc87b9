package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/net/packet"
)

// PacketSource hands queued server packets to the game loop.
type PacketSource interface {
	Drain(fn func([]byte)) int
}

// InputSystem drains server packets and dispatches them through the packet
// registry. Phase 0 (Input).
type InputSystem struct {
	source   PacketSource
	registry *packet.Registry
	log      *zap.Logger
}

func NewInputSystem(source PacketSource, registry *packet.Registry, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, registry: registry, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Time) {
	s.source.Drain(func(data []byte) {
		if err := s.registry.Dispatch(data); err != nil {
			s.log.Warn("封包分派錯誤", zap.Error(err))
		}
	})
}
