package session

import (
	"fmt"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/snapping"
)

// EventKind is the type of a pointer event
type EventKind int

const (
	EventMove EventKind = iota
	EventPress
	EventRelease
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a left-button pointer event in map coordinates
type Event struct {
	Kind EventKind
	Pos  geometry.Point
}

// Outcome describes what the session did with an event
type Outcome struct {
	Point      geometry.Point // constrained position
	Forward    bool           // the event was passed on to the tool
	Committed  bool           // Point was committed to the history
	Aligned    bool           // the angle axis was aligned to a segment
	AlignAngle float64        // aligned angle in degrees, when Aligned
	Snap       snapping.Result
	Locks      constraint.LockState // locks and read-outs after the event
}

// State is the lock state of a session
type State int

const (
	// StateIdle means no axis is locked
	StateIdle State = iota
	// StateConstrained means at least one axis is locked
	StateConstrained
)

func (s State) String() string {
	if s == StateConstrained {
		return "constrained"
	}
	return "idle"
}
