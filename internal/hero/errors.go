package hero

import (
	"fmt"

	"github.com/l1jgo/motion/internal/geom"
)

// FailKind classifies why a decomposition round failed.
type FailKind uint8

const (
	// FatalDesync: local state contradicts itself (start cell not walkable,
	// zero-distance move, vanished target). Clears the intent queue.
	FatalDesync FailKind = iota + 1
	// Unreachable: no route exists. Clears the intent queue.
	Unreachable
	// TemporarilyBlocked: a route exists but entities stand in it now.
	// The intent is put back verbatim for the next tick.
	TemporarilyBlocked
	// InvalidTier: a hop had no defined distance tier. Handled like FatalDesync.
	InvalidTier
)

func (k FailKind) String() string {
	switch k {
	case FatalDesync:
		return "FatalDesync"
	case Unreachable:
		return "Unreachable"
	case TemporarilyBlocked:
		return "TemporarilyBlocked"
	case InvalidTier:
		return "InvalidTier"
	default:
		return fmt.Sprintf("FailKind(%d)", uint8(k))
	}
}

// Clears reports whether the failure empties the intent queue.
func (k FailKind) Clears() bool { return k != TemporarilyBlocked }

// DecompError is returned by a decomposer that could not refine the head.
type DecompError struct {
	Kind FailKind
	Op   string
	From geom.Cell
	To   geom.Cell
}

func (e *DecompError) Error() string {
	return fmt.Sprintf("%s %v -> %v: %s", e.Op, e.From, e.To, e.Kind)
}

// Is matches any DecompError of the same kind, so callers can use
// errors.Is(err, ErrUnreachable).
func (e *DecompError) Is(target error) bool {
	t, ok := target.(*DecompError)
	if !ok {
		return false
	}
	return t.Op == "" && t.Kind == e.Kind
}

var (
	ErrFatalDesync        = &DecompError{Kind: FatalDesync}
	ErrUnreachable        = &DecompError{Kind: Unreachable}
	ErrTemporarilyBlocked = &DecompError{Kind: TemporarilyBlocked}
	ErrInvalidTier        = &DecompError{Kind: InvalidTier}
)

func failure(kind FailKind, op string, from, to geom.Cell) *DecompError {
	return &DecompError{Kind: kind, Op: op, From: from, To: to}
}
