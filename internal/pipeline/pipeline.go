// Package pipeline runs one complete board analysis: shape extraction,
// classification, connectivity, netlist, behavior, power and schematic.
//
// A run is synchronous and owns all of its state, including the id
// sequence, so concurrent runs never share ids.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"boardscan/internal/behavior"
	"boardscan/internal/component"
	"boardscan/internal/config"
	"boardscan/internal/connectivity"
	"boardscan/internal/logger"
	"boardscan/internal/netlist"
	"boardscan/internal/power"
	"boardscan/internal/schematic"
	"boardscan/internal/seq"
	"boardscan/internal/shape"
	"boardscan/internal/trace"

	"github.com/google/uuid"
)

// ErrNoImage is returned when a run is started without an image.
var ErrNoImage = errors.New("no image")

// Analysis is the circuit-level interpretation of the detected parts.
type Analysis struct {
	Connections []connectivity.Edge `json:"connections"`
	Netlist     netlist.Netlist     `json:"netlist"`
	Behavior    behavior.Profile    `json:"behavior"`
	Power       power.Profile       `json:"power_analysis"`
	SignalFlow  power.SignalFlow    `json:"signal_flow"`
}

// TypeCount is the number of components of one type.
type TypeCount struct {
	Type  component.Type `json:"type"`
	Count int            `json:"count"`
}

// Summary is the headline view of a run.
type Summary struct {
	ComponentCount int         `json:"component_count"`
	TypeCount      int         `json:"type_count"`
	ByType         []TypeCount `json:"by_type"` // In component.AllTypes order, zero counts omitted
	TraceCount     int         `json:"trace_count"`
	Functions      []string    `json:"functions"`
	CircuitType    string      `json:"circuit_type"`
	TotalPowerMW   float64     `json:"total_power_mw"`
}

// Result is the complete output of one run.
type Result struct {
	RunID      string                `json:"run_id"`
	Primitives int                   `json:"primitives"`
	Components []component.Component `json:"components"`
	Traces     []trace.Segment       `json:"traces"`
	Analysis   Analysis              `json:"analysis"`
	Schematic  schematic.Model       `json:"schematic"`
	Summary    Summary               `json:"summary"`
}

// AnalyzeImage converts img to a pixel buffer and runs Analyze.
func AnalyzeImage(img image.Image, p config.Params) (*Result, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	return Analyze(shape.BufferFromImage(img), p)
}

// Analyze runs the full pipeline over a pixel buffer. Only extraction can
// fail; on failure no partial result is returned.
func Analyze(buf shape.Buffer, p config.Params) (*Result, error) {
	done := logger.Stage("Shape extraction")
	prims, err := shape.Extract(buf, p.Extract)
	done()
	if err != nil {
		return nil, fmt.Errorf("extract shapes: %w", err)
	}
	return AnalyzePrimitives(prims, p), nil
}

// AnalyzePrimitives runs every stage after extraction. It never fails.
func AnalyzePrimitives(prims []shape.Primitive, p config.Params) *Result {
	runID := uuid.NewString()
	ids := seq.New(1)
	logger.Info("run %s: %d primitives", runID, len(prims))

	done := logger.Stage("Classification")
	classifier := &component.Classifier{Templates: p.Templates, Trace: p.Trace}
	comps, traces := classifier.ClassifyAll(prims, ids)
	done()

	done = logger.Stage("Circuit analysis")
	edges := connectivity.Resolve(comps, traces, p.Connectivity)
	profile := behavior.Classify(comps)
	pw := power.Analyze(comps)

	analysis := Analysis{
		Connections: edges,
		Netlist:     netlist.Build(comps, edges, ids),
		Behavior:    profile,
		Power:       pw,
		SignalFlow:  power.Flow(comps, edges, p.SignalFlow),
	}
	done()

	done = logger.Stage("Schematic")
	model := schematic.Synthesize(comps, edges, profile, pw.EstimatedTotalPower, p.Layout)
	done()

	return &Result{
		RunID:      runID,
		Primitives: len(prims),
		Components: nonNil(comps),
		Traces:     nonNil(traces),
		Analysis:   analysis,
		Schematic:  model,
		Summary:    Summarize(comps, traces, profile, pw),
	}
}

// Summarize builds the headline summary.
func Summarize(comps []component.Component, traces []trace.Segment, b behavior.Profile, pw power.Profile) Summary {
	counts := component.Counts(comps)

	byType := make([]TypeCount, 0, len(counts))
	for _, t := range component.AllTypes {
		if n := counts[t]; n > 0 {
			byType = append(byType, TypeCount{Type: t, Count: n})
		}
	}
	// Types outside AllTypes still count, after the known ones.
	var extra []component.Type
	for t := range counts {
		if !isKnown(t) {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, t := range extra {
		byType = append(byType, TypeCount{Type: t, Count: counts[t]})
	}

	return Summary{
		ComponentCount: len(comps),
		TypeCount:      len(counts),
		ByType:         byType,
		TraceCount:     len(traces),
		Functions:      b.EstimatedFunction,
		CircuitType:    b.CircuitType,
		TotalPowerMW:   pw.EstimatedTotalPower,
	}
}

func isKnown(t component.Type) bool {
	for _, k := range component.AllTypes {
		if k == t {
			return true
		}
	}
	return false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Outcome is the single message delivered by Go: a result or an error.
type Outcome struct {
	Result *Result
	Err    error
}

// Go runs AnalyzeImage on its own goroutine. The returned channel yields
// exactly one Outcome and is then closed.
func Go(img image.Image, p config.Params) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := AnalyzeImage(img, p)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}
