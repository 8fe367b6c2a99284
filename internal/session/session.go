// Package session drives the constraint engine from pointer events.
//
// A Session sits between the canvas and the editing tool: it snaps and
// constrains every left-button event, forwards the result to the tool and
// keeps the committed point history used by relative locks.
package session

import (
	"sync"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/snapping"
	"go.uber.org/zap"
)

// Snapper finds snap targets near a map position
type Snapper interface {
	Snap(p geometry.Point) snapping.Result
	WithExclusiveTarget(p geometry.Point, fn func()) error
}

// Tool receives the constrained events, e.g. a digitizing tool
type Tool interface {
	HandleEvent(ev Event)
}

// ToolFunc adapts a function to the Tool interface
type ToolFunc func(ev Event)

func (f ToolFunc) HandleEvent(ev Event) { f(ev) }

// MaxConstructionLines is the number of construction lines drawn at most
const MaxConstructionLines = 2

// Session holds the locks and point history of one editing session.
// The tool is called with the session lock held and must not call back into it.
type Session struct {
	mu sync.Mutex

	log     *zap.Logger
	snapper Snapper
	tool    Tool

	locks        constraint.LockState
	history      constraint.PointHistory
	snap         snapping.Result
	point        geometry.Point
	construction int
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithSnapper sets the snapping collaborator
func WithSnapper(snapper Snapper) Option {
	return func(s *Session) { s.snapper = snapper }
}

// WithTool sets the tool receiving forwarded events
func WithTool(tool Tool) Option {
	return func(s *Session) { s.tool = tool }
}

// New creates an active session without locks
func New(opts ...Option) *Session {
	s := &Session{
		log:   zap.NewNop(),
		locks: constraint.NewLockState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleEvent snaps, constrains and dispatches one pointer event
func (s *Session) HandleEvent(ev Event) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.locks.Applies() {
		s.forward(ev)
		return Outcome{Point: ev.Pos, Forward: true, Locks: s.locks}
	}

	raw, segment := s.resolveSnap(ev.Pos)
	s.history = s.history.WithCurrent(raw)
	s.point, s.locks = constraint.Constrain(raw, s.history, s.locks, segment)

	out := Outcome{Point: s.point, Snap: s.snap}

	if s.locks.AlignPending() {
		s.handleAlign(ev, segment, &out)
		out.Locks = s.locks
		return out
	}

	if s.locks.ConstructionMode {
		if ev.Kind == EventPress {
			s.construction = min(s.construction+1, MaxConstructionLines)
		}
	} else {
		constrained := Event{Kind: ev.Kind, Pos: s.point}
		if ev.Kind == EventMove {
			s.forward(constrained)
		} else {
			s.forwardExclusive(constrained)
			if ev.Kind == EventPress {
				s.construction = max(s.construction-1, 0)
			}
		}
		out.Forward = true
	}

	if ev.Kind == EventRelease {
		s.locks.UnlockAll()
		s.history = s.history.Commit(s.point)
		out.Committed = true
		s.log.Debug("point committed",
			zap.Float64("x", s.point.X),
			zap.Float64("y", s.point.Y),
			zap.Bool("construction", s.locks.ConstructionMode),
		)
	}

	out.Locks = s.locks
	return out
}

// handleAlign runs the parallel/perpendicular gesture: a press aligns the
// angle axis to the snapped segment, a release over a segment ends the gesture.
func (s *Session) handleAlign(ev Event, segment *constraint.ReferenceSegment, out *Outcome) {
	if segment == nil {
		return
	}
	switch ev.Kind {
	case EventPress:
		mode, _ := s.locks.PendingAlign()
		out.AlignAngle = s.locks.AlignToSegment(*segment, s.history, mode)
		out.Aligned = true
		s.log.Debug("angle aligned to segment",
			zap.Stringer("mode", mode),
			zap.Float64("angle", out.AlignAngle),
		)
	case EventRelease:
		s.locks.ClearAlign()
	}
}

func (s *Session) forward(ev Event) {
	if s.tool != nil {
		s.tool.HandleEvent(ev)
	}
}

// forwardExclusive passes a click to the tool while the constrained point
// is the only snap target, so the tool's own snapping cannot move it.
func (s *Session) forwardExclusive(ev Event) {
	if s.snapper == nil {
		s.forward(ev)
		return
	}
	err := s.snapper.WithExclusiveTarget(ev.Pos, func() { s.forward(ev) })
	if err != nil {
		s.log.Warn("forwarding without exclusive snap target", zap.Error(err))
		s.forward(ev)
	}
}

func (s *Session) resolveSnap(pos geometry.Point) (geometry.Point, *constraint.ReferenceSegment) {
	s.snap = snapping.Result{}
	if s.snapper == nil {
		return pos, nil
	}

	s.snap = s.snapper.Snap(pos)
	switch {
	case s.snap.Point != nil:
		return *s.snap.Point, nil
	case s.snap.Segment != nil:
		segment := *s.snap.Segment
		return segment.Nearest, &segment
	default:
		return pos, nil
	}
}
