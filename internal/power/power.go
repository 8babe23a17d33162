// Package power estimates power draw and buckets components into signal
// flow stages. All numbers are coarse per-type lookups, not measurements.
package power

import (
	"boardscan/internal/component"
	"boardscan/internal/connectivity"
	"boardscan/internal/logger"
)

// Per-type power estimates in milliwatts.
const (
	LargeICMilliwatts         = 500
	SmallICMilliwatts         = 100
	PowerResistorMilliwatts   = 1000
	ResistorMilliwatts        = 250
	PowerTransistorMilliwatts = 2000
	TransistorMilliwatts      = 100
	DefaultMilliwatts         = 10

	// LargeICPins is the pin count above which an IC uses the large estimate.
	LargeICPins = 20
)

// Rail is one supply rail of the power distribution.
type Rail struct {
	Name       string   `json:"name"`
	Voltage    string   `json:"voltage"`
	Components []string `json:"components"`
}

// Draw is the estimate for one component.
type Draw struct {
	Component  string  `json:"component"`
	Milliwatts float64 `json:"milliwatts"`
}

// Profile is the power distribution estimate.
type Profile struct {
	EstimatedTotalPower float64           `json:"estimated_total_power"` // mW
	Draws               []Draw            `json:"draws"`
	PowerRails          Section[Rail]     `json:"power_rails"`
	CriticalPaths       Section[[]string] `json:"critical_paths"`
}

// Estimate returns the milliwatt estimate for one component.
func Estimate(c component.Component) float64 {
	switch c.Type {
	case component.IC:
		if c.Properties.PinCount > LargeICPins {
			return LargeICMilliwatts
		}
		return SmallICMilliwatts
	case component.Resistor:
		if c.Properties.PowerRating == "1W+" {
			return PowerResistorMilliwatts
		}
		return ResistorMilliwatts
	case component.Transistor:
		if c.Properties.Kind == "Power" {
			return PowerTransistorMilliwatts
		}
		return TransistorMilliwatts
	default:
		return DefaultMilliwatts
	}
}

// Analyze sums the per-component estimates. Rail decomposition and critical
// path detection are not part of the model and are reported as such.
func Analyze(comps []component.Component) Profile {
	p := Profile{
		Draws:         make([]Draw, 0, len(comps)),
		PowerRails:    Skipped[Rail]("rail decomposition is not derived from nets"),
		CriticalPaths: Skipped[[]string]("critical path detection is not implemented"),
	}

	for _, c := range comps {
		mw := Estimate(c)
		p.Draws = append(p.Draws, Draw{Component: c.ID, Milliwatts: mw})
		p.EstimatedTotalPower += mw
	}

	logger.Info("power: %.0f mW across %d components", p.EstimatedTotalPower, len(comps))
	return p
}

// FlowOptions configures stage bucketing.
type FlowOptions struct {
	InputThresholdX float64 `toml:"input_threshold_x"` // Single-connection parts left of this are inputs
}

// DefaultFlowOptions returns the canonical 200 px input threshold.
func DefaultFlowOptions() FlowOptions {
	return FlowOptions{InputThresholdX: 200}
}

// SignalFlow buckets component ids by their role in the signal chain.
type SignalFlow struct {
	InputStages      []string          `json:"input_stages"`
	ProcessingStages []string          `json:"processing_stages"`
	OutputStages     []string          `json:"output_stages"`
	FeedbackPaths    Section[[]string] `json:"feedback_paths"`
}

// Stage is a signal flow bucket.
type Stage int

const (
	InputStage Stage = iota
	ProcessingStage
	OutputStage
)

func (s Stage) String() string {
	switch s {
	case InputStage:
		return "input"
	case OutputStage:
		return "output"
	default:
		return "processing"
	}
}

// Classify places a component with the given connection degree. Exactly one
// connection makes a terminal stage, chosen by horizontal position; any other
// degree, including zero, counts as processing.
func Classify(c component.Component, degree int, opts FlowOptions) Stage {
	if degree != 1 {
		return ProcessingStage
	}
	if c.Position.X < opts.InputThresholdX {
		return InputStage
	}
	return OutputStage
}

// Flow buckets every component by its connection degree over edges.
func Flow(comps []component.Component, edges []connectivity.Edge, opts FlowOptions) SignalFlow {
	f := SignalFlow{
		InputStages:      []string{},
		ProcessingStages: []string{},
		OutputStages:     []string{},
		FeedbackPaths:    Skipped[[]string]("feedback path detection is not implemented"),
	}

	for _, c := range comps {
		switch Classify(c, connectivity.Degree(edges, c.ID), opts) {
		case InputStage:
			f.InputStages = append(f.InputStages, c.ID)
		case OutputStage:
			f.OutputStages = append(f.OutputStages, c.ID)
		default:
			f.ProcessingStages = append(f.ProcessingStages, c.ID)
		}
	}

	logger.Debug("signal flow: %d in, %d processing, %d out",
		len(f.InputStages), len(f.ProcessingStages), len(f.OutputStages))
	return f
}
