package handler

import (
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/core/event"
	"github.com/l1jgo/motion/internal/net/packet"
)

// HandlePullBack applies S_PULLBACK: the server rejected an action and
// puts the hero back where it thinks the hero stands.
func HandlePullBack(r *packet.Reader, deps *Deps) error {
	p, err := packet.ReadPullBack(r)
	if err != nil {
		return err
	}
	if p.UID != deps.Hero.UID() {
		deps.Log.Debug("pullback for another uid", zap.Uint32("uid", p.UID))
		return nil
	}

	deps.Log.Info("伺服器位置校正",
		zap.Stringer("from", deps.Hero.Position()),
		zap.Stringer("to", p.Cell),
		zap.String("reason", p.Reason))
	deps.Hero.PullBack(p.Cell)
	if deps.Bus != nil {
		event.Emit(deps.Bus, event.PulledBack{UID: p.UID, Cell: p.Cell, Reason: p.Reason})
	}
	return nil
}
