package hero

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/core/event"
	"github.com/l1jgo/motion/internal/geom"
)

// Pathfinder returns the cells from `from` to `to` inclusive, nil when no
// route exists.
type Pathfinder interface {
	FindPath(from, to geom.Cell, avoidBlocked, avoidOccupied bool) []geom.Cell
}

// Occupancy answers whether a cell is ground and, with avoidOccupied, free.
type Occupancy interface {
	CanMove(avoidOccupied bool, c geom.Cell) bool
}

// Directory resolves an entity UID to its current cell.
type Directory interface {
	Resolve(uid uint32) (geom.Cell, bool)
}

// Presenter expands an atomic intent into motions (via Hero.PushMotion) and
// applies its side effects.
type Presenter interface {
	Present(h *Hero, in action.Intent) error
}

// Reporter sends an atomic action to the server. Fire-and-forget.
type Reporter interface {
	Report(node action.ActionNode)
}

// SpellRanger tells how close a spell must be cast. Undefined or Zero means
// the spell has no range rule.
type SpellRanger interface {
	SpellRange(spellID int32) geom.RangeTier
}

// ItemSource lists the ground object IDs lying on a cell.
type ItemSource interface {
	ItemIDsAt(c geom.Cell) []int32
}

// Deps are the collaborators a hero consumes. Spells and Bus are optional.
type Deps struct {
	Paths     Pathfinder
	Occupancy Occupancy
	Directory Directory
	Presenter Presenter
	Reporter  Reporter
	Spells    SpellRanger
	Bus       *event.Bus
}

// Options configure a hero.
type Options struct {
	UID          uint32
	Start        geom.Cell
	Heading      geom.Heading
	Mounted      bool
	DefaultSpeed int32
	MotionDelay  time.Duration
	TraceMove    bool
}

// State is the scheduler phase of the last tick.
type State uint8

const (
	StateIdle State = iota
	StateDecomposing
	StatePresenting
)

func (s State) String() string {
	switch s {
	case StateDecomposing:
		return "decomposing"
	case StatePresenting:
		return "presenting"
	default:
		return "idle"
	}
}

const (
	maxStepOnFoot = 1
	maxStepMount  = 3
)

// Hero owns the intent and motion queues of the local player character and
// turns the head intent into one atomic motion per tick.
// Accessed only from the game loop goroutine; no locks needed.
type Hero struct {
	opts    Options
	mounted bool

	paths     Pathfinder
	occ       Occupancy
	dir       Directory
	presenter Presenter
	reporter  Reporter
	spells    SpellRanger
	bus       *event.Bus
	log       *zap.Logger

	intents IntentQueue
	motions MotionQueue
	active  action.Motion

	state      State
	ticks      uint64
	lastUpdate time.Time
}

// New creates a hero standing at opts.Start.
func New(opts Options, deps Deps, log *zap.Logger) (*Hero, error) {
	switch {
	case deps.Paths == nil:
		return nil, errors.New("hero: nil pathfinder")
	case deps.Occupancy == nil:
		return nil, errors.New("hero: nil occupancy")
	case deps.Directory == nil:
		return nil, errors.New("hero: nil directory")
	case deps.Presenter == nil:
		return nil, errors.New("hero: nil presenter")
	case deps.Reporter == nil:
		return nil, errors.New("hero: nil reporter")
	}
	if !opts.Heading.Valid() {
		return nil, fmt.Errorf("hero: invalid heading %d", opts.Heading)
	}
	if opts.DefaultSpeed <= 0 {
		opts.DefaultSpeed = action.DefaultSpeed
	}
	if opts.MotionDelay < 0 {
		return nil, fmt.Errorf("hero: negative motion delay %s", opts.MotionDelay)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hero{
		opts:      opts,
		mounted:   opts.Mounted,
		paths:     deps.Paths,
		occ:       deps.Occupancy,
		dir:       deps.Directory,
		presenter: deps.Presenter,
		reporter:  deps.Reporter,
		spells:    deps.Spells,
		bus:       deps.Bus,
		log:       log.With(zap.Uint32("uid", opts.UID)),
		active:    action.Stand(opts.Start, opts.Heading),
	}, nil
}

func (h *Hero) UID() uint32 { return h.opts.UID }

// Position is the cell the active motion ends on.
func (h *Hero) Position() geom.Cell { return h.active.To }

func (h *Hero) Heading() geom.Heading { return h.active.Heading }

// Active returns the motion currently playing.
func (h *Hero) Active() action.Motion { return h.active }

// Intents returns a copy of the intent queue, head first.
func (h *Hero) Intents() []action.Intent { return h.intents.Items() }

// Motions returns a copy of the pending motion queue.
func (h *Hero) Motions() []action.Motion { return h.motions.Items() }

func (h *Hero) State() State { return h.state }

func (h *Hero) Mounted() bool { return h.mounted }

func (h *Hero) SetMounted(m bool) { h.mounted = m }

func (h *Hero) DefaultSpeed() int32 { return h.opts.DefaultSpeed }

// MaxStep is the longest single hop: 3 cells mounted, 1 on foot.
// The pathfinder reads it to size its jumps.
func (h *Hero) MaxStep() int {
	if h.mounted {
		return maxStepMount
	}
	return maxStepOnFoot
}

// Enqueue replaces the whole intent queue; only one top-level command is
// active at a time.
func (h *Hero) Enqueue(in action.Intent) {
	h.intents.Clear()
	h.intents.PushBack(in)
}

// IsIdle reports whether both queues are empty.
func (h *Hero) IsIdle() bool {
	return h.intents.Empty() && h.motions.Empty()
}

// PushMotion appends a motion. Only the presenter calls this.
func (h *Hero) PushMotion(m action.Motion) {
	h.motions.PushBack(m)
}

// PullBack applies a server position correction: everything queued is
// dropped and the hero stands at c.
func (h *Hero) PullBack(c geom.Cell) {
	h.intents.Clear()
	h.motions.Clear()
	h.active = action.Stand(c, h.active.Heading)
	h.state = StateIdle
	h.log.Info("pulled back", zap.Stringer("cell", c))
}

// PickUpHere reports a pickup for every ground item under an idle hero.
// Returns how many were reported.
func (h *Hero) PickUpHere(items ItemSource) int {
	if !h.IsIdle() || items == nil {
		return 0
	}
	pos := h.Position()
	ids := items.ItemIDsAt(pos)
	for _, id := range ids {
		in := action.PickUp(pos, pos, id)
		in.Heading = h.active.Heading
		h.report(in)
	}
	return len(ids)
}

// Tick runs one scheduler round. It returns false when the caller should
// stop driving this cycle: a decomposition failed, presentation failed, or
// the motion queue is inconsistent.
func (h *Hero) Tick(now time.Time) bool {
	if !h.lastUpdate.IsZero() && now.Before(h.lastUpdate.Add(h.opts.MotionDelay)) {
		return true
	}

	if !h.motions.Empty() {
		if !h.motionsContinuous() {
			h.log.Error("motion queue not continuous",
				zap.Stringer("active", h.active),
				zap.Int("pending", h.motions.Len()))
			h.motions.Clear()
			return false
		}
		h.activateNext(now)
		return true
	}

	head, ok := h.intents.Front()
	if !ok {
		if h.active.Kind != action.MotionStand || h.active.Moving() {
			h.active = action.Stand(h.Position(), h.active.Heading)
		}
		h.state = StateIdle
		return true
	}

	h.state = StateDecomposing
	if !h.motions.Empty() {
		h.log.DPanic("decomposition with pending motions", zap.Int("pending", h.motions.Len()))
		return false
	}

	if h.opts.TraceMove {
		h.trace("before")
	}
	res := h.refine(head)
	if !h.apply(head, res) {
		h.fail(head, res.Err)
		if h.opts.TraceMove {
			h.trace("after")
		}
		return false
	}

	atomic, _ := h.intents.PopFront()
	h.report(atomic)

	h.state = StatePresenting
	if err := h.presenter.Present(h, atomic); err != nil {
		h.log.Warn("present failed", zap.Stringer("intent", atomic), zap.Error(err))
		return false
	}
	if !h.motions.Empty() {
		h.activateNext(now)
	}
	if h.opts.TraceMove {
		h.trace("after")
	}
	return true
}

func (h *Hero) activateNext(now time.Time) {
	m, _ := h.motions.PopFront()
	h.active = m
	h.lastUpdate = now
}

// motionsContinuous checks that each pending motion starts where the one
// before it ends, starting from the active motion.
func (h *Hero) motionsContinuous() bool {
	at := h.active.To
	for _, m := range h.motions.items {
		if m.From != at {
			return false
		}
		at = m.To
	}
	return true
}

func (h *Hero) report(in action.Intent) {
	node := in.Node()
	h.reporter.Report(node)
	h.ticks++
	if h.bus != nil {
		event.Emit(h.bus, event.ActionReported{UID: h.opts.UID, Tick: h.ticks, Node: node})
	}
}

func (h *Hero) fail(in action.Intent, err *DecompError) {
	cleared := err.Kind.Clears()
	if cleared {
		h.log.Warn("decompose failed",
			zap.Bool("fatal", true),
			zap.Stringer("intent", in),
			zap.Error(err))
	} else {
		h.log.Info("decompose deferred",
			zap.Bool("fatal", false),
			zap.Stringer("intent", in),
			zap.Error(err))
	}
	if h.bus != nil {
		event.Emit(h.bus, event.IntentFailed{UID: h.opts.UID, Intent: in, Err: err, Cleared: cleared})
	}
}

func (h *Hero) trace(stage string) {
	intents := make([]string, 0, h.intents.Len())
	for _, in := range h.intents.items {
		intents = append(intents, in.String())
	}
	motions := make([]string, 0, h.motions.Len())
	for _, m := range h.motions.items {
		motions = append(motions, m.String())
	}
	h.log.Debug("trace move",
		zap.String("stage", stage),
		zap.Stringer("active", h.active),
		zap.Strings("intents", intents),
		zap.Strings("motions", motions))
}
