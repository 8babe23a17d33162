package component

import (
	"boardscan/internal/logger"
	"boardscan/internal/seq"
	"boardscan/internal/shape"
	"boardscan/internal/trace"
)

// Id prefixes minted from the run sequence.
const (
	ComponentPrefix = "comp_"
	TracePrefix     = "trace_"
)

// Outcome is the result of classifying one primitive: exactly one of
// Detected, Trace or Discarded.
type Outcome interface {
	outcome()
}

// Detected carries a component candidate.
type Detected struct {
	Component Component
}

// Trace carries a trace segment.
type Trace struct {
	Segment trace.Segment
}

// Discarded marks a primitive that matched nothing. It is expected noise.
type Discarded struct {
	Index int
}

func (Detected) outcome()  {}
func (Trace) outcome()     {}
func (Discarded) outcome() {}

// Classifier maps primitives to outcomes using ordered templates and the
// trace heuristic.
type Classifier struct {
	Templates []Template
	Trace     trace.Heuristic
}

// NewClassifier creates a classifier with the default templates.
func NewClassifier(h trace.Heuristic) *Classifier {
	return &Classifier{
		Templates: DefaultTemplates(),
		Trace:     h,
	}
}

// Match returns the first accepting template type and its confidence,
// without minting ids or estimating properties.
func (c *Classifier) Match(p shape.Primitive) (Type, float64, bool) {
	t, ok := FirstMatch(c.Templates, p)
	if !ok {
		return "", 0, false
	}
	return t.Type, t.Confidence(p), true
}

// Classify evaluates one primitive. Ids are drawn from ids only for
// primitives that become a component or trace.
func (c *Classifier) Classify(p shape.Primitive, ids *seq.Sequence) Outcome {
	if t, ok := FirstMatch(c.Templates, p); ok {
		return Detected{Component: Component{
			ID:         ids.NextID(ComponentPrefix),
			Type:       t.Type,
			Confidence: t.Confidence(p),
			Position:   p.Bounds.Center(),
			Bounds:     p.Bounds,
			Properties: EstimateProperties(t.Type, p.Bounds, p.Area),
		}}
	}

	if c.Trace.IsTrace(p.Area, p.AspectRatio, p.Bounds) {
		return Trace{Segment: trace.NewSegment(ids.NextID(TracePrefix), p.Points, p.Bounds)}
	}

	return Discarded{Index: p.Index}
}

// ClassifyAll partitions primitives into components and traces, preserving
// discovery order. Discarded primitives produce no output.
func (c *Classifier) ClassifyAll(prims []shape.Primitive, ids *seq.Sequence) ([]Component, []trace.Segment) {
	var (
		comps     []Component
		traces    []trace.Segment
		discarded int
	)

	for _, p := range prims {
		switch o := c.Classify(p, ids).(type) {
		case Detected:
			comps = append(comps, o.Component)
		case Trace:
			traces = append(traces, o.Segment)
		case Discarded:
			discarded++
			logger.Debug("classify: primitive %d (area %.0f, aspect %.2f, circ %.2f) discarded",
				o.Index, p.Area, p.AspectRatio, p.Circularity)
		}
	}

	logger.Info("classify: %d components, %d traces, %d discarded", len(comps), len(traces), discarded)
	return comps, traces
}
