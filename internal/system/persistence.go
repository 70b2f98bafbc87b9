package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/core/event"
	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/persist"
)

// JournalSystem records every reported action in the journal and flushes
// it to the store every interval ticks. Phase 4 (Persist).
type JournalSystem struct {
	journal   *persist.Journal
	store     persist.JournalStore
	log       *zap.Logger
	tickCount int
	interval  int
}

// NewJournalSystem subscribes to ActionReported on bus.
func NewJournalSystem(bus *event.Bus, journal *persist.Journal, store persist.JournalStore, log *zap.Logger, intervalTicks int) *JournalSystem {
	s := &JournalSystem{
		journal:  journal,
		store:    store,
		log:      log,
		interval: intervalTicks,
	}
	event.Subscribe(bus, func(e event.ActionReported) {
		s.journal.Append(e.UID, e.Node)
	})
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) Update(_ time.Time) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush writes the buffered entries now. Called on shutdown too.
func (s *JournalSystem) Flush() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := s.journal.Flush(ctx, s.store)
	if err != nil {
		s.log.Error("日誌寫入失敗", zap.Int("pending", s.journal.Pending()), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Debug("日誌寫入完成", zap.Int("entries", n))
	}
}
