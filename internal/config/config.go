// Package config holds every tunable constant of the analysis pipeline and
// reads and writes it as TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"boardscan/internal/component"
	"boardscan/internal/connectivity"
	"boardscan/internal/power"
	"boardscan/internal/schematic"
	"boardscan/internal/shape"
	"boardscan/internal/trace"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidParams is returned by Validate and wraps every validation failure.
var ErrInvalidParams = errors.New("invalid parameters")

// Params aggregates the settings of all pipeline stages.
type Params struct {
	Extract      shape.Options           `toml:"extract"`
	Templates    []component.Template    `toml:"templates"`
	Trace        trace.Heuristic         `toml:"trace"`
	Connectivity connectivity.Options    `toml:"connectivity"`
	SignalFlow   power.FlowOptions       `toml:"signal_flow"`
	Layout       schematic.LayoutOptions `toml:"layout"`
}

// Default returns the canonical parameters.
func Default() Params {
	return Params{
		Extract:      shape.DefaultOptions(),
		Templates:    component.DefaultTemplates(),
		Trace:        trace.DefaultHeuristic(),
		Connectivity: connectivity.DefaultOptions(),
		SignalFlow:   power.DefaultFlowOptions(),
		Layout:       schematic.DefaultLayoutOptions(),
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default values. The result is validated.
func Load(path string) (Params, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	// A templates table in the file replaces the default list as a whole.
	p.Templates = nil
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(p.Templates) == 0 {
		p.Templates = component.DefaultTemplates()
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Save writes the parameters to path as TOML, creating parent directories.
func (p Params) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	e := p.Extract
	check(e.BlurKernel == 0 || (e.BlurKernel > 0 && e.BlurKernel%2 == 1), "extract.blur_kernel must be 0 or a positive odd number, got %d", e.BlurKernel)
	switch e.Mode {
	case shape.ThresholdAdaptive:
		check(e.BlockSize >= 3 && e.BlockSize%2 == 1, "extract.block_size must be odd and >= 3, got %d", e.BlockSize)
	case shape.ThresholdFixed, shape.ThresholdOtsu:
	default:
		check(false, "extract.threshold_mode %q is not one of adaptive, fixed, otsu", e.Mode)
	}
	check(e.Level >= 0 && e.Level <= 255, "extract.level must be within 0-255, got %g", e.Level)
	check(e.MinArea >= 0, "extract.min_area must not be negative")

	check(len(p.Templates) > 0, "at least one template is required")
	for _, t := range p.Templates {
		ranges := []struct {
			name string
			r    component.Range
		}{
			{"area", t.Area},
			{"aspect_ratio", t.AspectRatio},
			{"circularity", t.Circularity},
		}
		for _, rg := range ranges {
			check(rg.r.Min <= rg.r.Max, "template %s: %s min %g exceeds max %g", t.Type, rg.name, rg.r.Min, rg.r.Max)
		}
	}

	check(p.Trace.MinTallAspect <= p.Trace.MaxWideAspect, "trace.min_tall_aspect exceeds trace.max_wide_aspect")
	check(p.Connectivity.Threshold > 0, "connectivity.threshold must be positive")
	check(p.Connectivity.AssumedWidthMM > 0 && p.Connectivity.CopperThicknessMM > 0,
		"connectivity copper width and thickness must be positive")

	l := p.Layout
	check(l.Width > 0 && l.Height > 0, "layout.width and layout.height must be positive")
	check(l.ColumnBudget >= l.OriginX, "layout.column_budget must not be left of layout.origin_x")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}
