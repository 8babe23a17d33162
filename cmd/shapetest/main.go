// Command shapetest runs shape extraction on a board image and prints how
// every primitive classifies.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"boardscan/internal/component"
	"boardscan/internal/config"
	"boardscan/internal/seq"
	"boardscan/internal/shape"

	_ "golang.org/x/image/tiff"
)

func main() {
	imagePath := flag.String("image", "", "Path to board image (TIFF, PNG, or JPEG)")
	configPath := flag.String("config", "", "TOML parameter file")
	mode := flag.String("mode", "", "Threshold mode override: adaptive, fixed or otsu")
	minArea := flag.Float64("min-area", -1, "Minimum contour area override")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: shapetest -image <path> [-config params.toml] [-mode adaptive|fixed|otsu] [-min-area 50]")
		os.Exit(1)
	}

	params := config.Default()
	if *configPath != "" {
		p, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		params = p
	}
	if *mode != "" {
		params.Extract.Mode = shape.ThresholdMode(*mode)
	}
	if *minArea >= 0 {
		params.Extract.MinArea = *minArea
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	opts := params.Extract
	fmt.Printf("\nExtraction parameters:\n")
	fmt.Printf("  Blur kernel: %d\n", opts.BlurKernel)
	fmt.Printf("  Threshold: %s (block %d, C %.1f, level %.0f, invert %v)\n",
		opts.Mode, opts.BlockSize, opts.C, opts.Level, opts.Invert)
	fmt.Printf("  Min area: %.0f\n", opts.MinArea)

	prims, err := shape.Extract(shape.BufferFromImage(img), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	classifier := &component.Classifier{Templates: params.Templates, Trace: params.Trace}
	ids := seq.New(1)

	fmt.Printf("\nExtracted %d primitives:\n", len(prims))
	fmt.Printf("%-6s %10s %10s %10s %8s %8s  %-10s %-14s %s\n",
		"Index", "X", "Y", "Area", "Aspect", "Circ", "Quick", "Outcome", "Detail")
	fmt.Println(strings.Repeat("-", 96))

	var comps, traces, discarded int
	for _, p := range prims {
		c := p.Bounds.Center()
		var kind, detail string
		switch o := classifier.Classify(p, ids).(type) {
		case component.Detected:
			comps++
			kind = o.Component.ID
			detail = fmt.Sprintf("%s (%.2f)", o.Component.Type, o.Component.Confidence)
		case component.Trace:
			traces++
			kind = o.Segment.ID
			detail = fmt.Sprintf("%.1f px wide", o.Segment.Width)
		case component.Discarded:
			discarded++
			kind = "-"
		}
		quick := "-"
		if t, _, ok := component.QuickClassify(p.Circularity); ok {
			quick = string(t)
		}
		fmt.Printf("%-6d %10.1f %10.1f %10.1f %8.2f %8.3f  %-10s %-14s %s\n",
			p.Index, c.X, c.Y, p.Area, p.AspectRatio, p.Circularity, quick, kind, detail)
	}

	fmt.Printf("\nComponents: %d  Traces: %d  Discarded: %d\n", comps, traces, discarded)
}
