package replay

import (
	"context"
	"fmt"

	"github.com/3nids/CadInput/internal/session"
	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"go.uber.org/zap"
)

// StepResult records what one step did
type StepResult struct {
	Index      int             `json:"index"`
	Kind       string          `json:"kind"`
	Point      *geometry.Point `json:"point,omitempty"`
	Committed  bool            `json:"committed,omitempty"`
	Aligned    bool            `json:"aligned,omitempty"`
	AlignAngle float64         `json:"align_angle,omitempty"`
}

// Transcript is the result of a replay
type Transcript struct {
	Steps        []StepResult     `json:"steps"`
	Committed    []geometry.Point `json:"committed"`    // digitized points
	Construction []geometry.Point `json:"construction"` // construction points, not digitized
	FeatureID    string           `json:"feature_id,omitempty"`
}

type options struct {
	log   *zap.Logger
	store layer.Store
	layer string
}

// Option configures Run
type Option func(*options)

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStore stores the digitized points as one feature of the current layer
func WithStore(store layer.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLayer overrides the layer receiving the feature
func WithLayer(name string) Option {
	return func(o *options) { o.layer = name }
}

// Run executes every step of script against sess
func Run(ctx context.Context, script *Script, sess *session.Session, opts ...Option) (Transcript, error) {
	o := options{log: zap.NewNop(), layer: script.CurrentLayer}
	for _, opt := range opts {
		opt(&o)
	}

	tr := Transcript{
		Steps:        make([]StepResult, 0, len(script.Steps)),
		Committed:    make([]geometry.Point, 0),
		Construction: make([]geometry.Point, 0),
	}

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		res, err := runStep(sess, step, &tr)
		if err != nil {
			return tr, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Index = i + 1
		tr.Steps = append(tr.Steps, res)

		o.log.Debug("replay step",
			zap.Int("index", res.Index),
			zap.String("kind", res.Kind),
			zap.Bool("committed", res.Committed),
		)
	}

	if o.store != nil && len(tr.Committed) > 0 {
		if o.layer == "" {
			return tr, fmt.Errorf("no layer to store %d points", len(tr.Committed))
		}
		kind := layer.KindLine
		if len(tr.Committed) == 1 {
			kind = layer.KindPoint
		}
		f := layer.NewFeature(o.layer, kind, tr.Committed...)
		if err := o.store.AddFeature(ctx, f); err != nil {
			return tr, fmt.Errorf("storing feature: %w", err)
		}
		tr.FeatureID = f.ID
		o.log.Info("feature stored",
			zap.String("id", f.ID),
			zap.String("layer", o.layer),
			zap.Int("points", len(f.Points)),
		)
	}

	return tr, nil
}

func runStep(sess *session.Session, step Step, tr *Transcript) (StepResult, error) {
	res := StepResult{Kind: step.Kind()}

	switch res.Kind {
	case "move":
		record(&res, tr, sess.HandleEvent(session.Event{Kind: session.EventMove, Pos: step.Move.Point()}))
	case "press":
		record(&res, tr, sess.HandleEvent(session.Event{Kind: session.EventPress, Pos: step.Press.Point()}))
	case "release":
		record(&res, tr, sess.HandleEvent(session.Event{Kind: session.EventRelease, Pos: step.Release.Point()}))
	case "click":
		p := step.Click.Point()
		record(&res, tr, sess.HandleEvent(session.Event{Kind: session.EventPress, Pos: p}))
		record(&res, tr, sess.HandleEvent(session.Event{Kind: session.EventRelease, Pos: p}))
	case "lock":
		axis, err := constraint.ParseAxis(step.Lock.Axis)
		if err != nil {
			return res, err
		}
		if step.Lock.Relative != nil {
			sess.SetRelative(axis, *step.Lock.Relative)
		}
		sess.Lock(axis, step.Lock.Value)
	case "unlock":
		axis, err := constraint.ParseAxis(step.Unlock)
		if err != nil {
			return res, err
		}
		sess.Unlock(axis)
	case "parallel":
		sess.RequestParallel()
	case "perpendicular":
		sess.RequestPerpendicular()
	case "cancel_align":
		sess.CancelAlign()
	case "construction":
		sess.SetConstruction(*step.Construction)
	default:
		return res, ErrUnknownStep
	}
	return res, nil
}

func record(res *StepResult, tr *Transcript, out session.Outcome) {
	p := out.Point
	res.Point = &p
	if out.Aligned {
		res.Aligned = true
		res.AlignAngle = out.AlignAngle
	}
	if !out.Committed {
		return
	}
	res.Committed = true
	if out.Forward {
		tr.Committed = append(tr.Committed, p)
	} else {
		tr.Construction = append(tr.Construction, p)
	}
}
