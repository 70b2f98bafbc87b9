package event

import (
	"github.com/l1jgo/motion/internal/action"
	"github.com/l1jgo/motion/internal/geom"
)

// ActionReported is emitted after an atomic intent went to the report channel.
type ActionReported struct {
	UID  uint32
	Tick uint64
	Node action.ActionNode
}

// IntentFailed is emitted when the head intent could not be refined.
// Cleared tells whether the whole intent queue was dropped.
type IntentFailed struct {
	UID     uint32
	Intent  action.Intent
	Err     error
	Cleared bool
}

// PulledBack is emitted when the server corrected the hero's position.
type PulledBack struct {
	UID    uint32
	Cell   geom.Cell
	Reason string
}
