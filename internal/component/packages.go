package component

import (
	"math"

	"boardscan/pkg/geometry"
)

// Package names used by the package guess. These are shape buckets only:
// an elongated body reads as SOP, a large squarish one as DIP.
const (
	PackageSOP   = "SOP"
	PackageDIP   = "DIP"
	PackageSMD   = "SMD"
	PackageTO220 = "TO-220"
	PackageTO92  = "TO-92"
)

// estimatePinCount guesses IC pins from the bounding-box perimeter,
// assuming roughly one pin per 10px of outline.
func estimatePinCount(bounds geometry.Rect) int {
	perimeter := 2 * (bounds.Width + bounds.Height)
	return int(math.Round(perimeter / 10))
}

// estimateICPackage buckets an IC body by aspect ratio and width.
func estimateICPackage(bounds geometry.Rect) string {
	aspect := bounds.AspectRatio()
	if aspect > 2 || aspect < 0.5 {
		return PackageSOP
	}
	if bounds.Width > 50 {
		return PackageDIP
	}
	return PackageSMD
}

// estimateTransistor returns the kind and package for a transistor body.
// Wide bodies are treated as tab-mount power parts.
func estimateTransistor(bounds geometry.Rect) (kind, pkg string) {
	if bounds.Width > bounds.Height {
		return "Power", PackageTO220
	}
	return "Signal", PackageTO92
}
