package shape

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"boardscan/internal/logger"
	"boardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

var (
	// ErrEmptyImage is returned for a zero-sized pixel buffer.
	ErrEmptyImage = errors.New("empty image")

	// ErrBadBuffer is returned when the pixel slice does not match width*height*4.
	ErrBadBuffer = errors.New("pixel buffer size mismatch")
)

// Buffer is a decoded image with an explicit 4-channel RGBA layout.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // Row-major, 4 bytes per pixel
}

// Validate checks the buffer dimensions against its pixel data.
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return ErrEmptyImage
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrBadBuffer, len(b.Pix), b.Width*b.Height*4)
	}
	return nil
}

// BufferFromImage converts any decoded Go image into an RGBA buffer.
func BufferFromImage(img image.Image) Buffer {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) || len(rgba.Pix) != bounds.Dx()*bounds.Dy()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return Buffer{Width: bounds.Dx(), Height: bounds.Dy(), Pix: rgba.Pix}
}

// ThresholdMode selects how the blurred grayscale image is binarized.
type ThresholdMode string

const (
	ThresholdAdaptive ThresholdMode = "adaptive" // Gaussian-weighted local mean
	ThresholdFixed    ThresholdMode = "fixed"    // Single global level
	ThresholdOtsu     ThresholdMode = "otsu"     // Global level chosen by Otsu's method
)

// Options configures primitive extraction.
type Options struct {
	BlurKernel int           `toml:"blur_kernel"` // Gaussian kernel size (odd), 0 disables blur
	Mode       ThresholdMode `toml:"threshold_mode"`
	BlockSize  int           `toml:"block_size"` // Adaptive neighbourhood size (odd)
	C          float64       `toml:"c"`          // Constant subtracted from the adaptive mean
	Level      float64       `toml:"level"`      // Fixed threshold level (0-255)
	Invert     bool          `toml:"invert"`     // Treat dark regions as foreground
	MinArea    float64       `toml:"min_area"`   // Contours below this area are dropped
}

// DefaultOptions returns the canonical extraction settings.
func DefaultOptions() Options {
	return Options{
		BlurKernel: 5,
		Mode:       ThresholdAdaptive,
		BlockSize:  11,
		C:          2,
		Level:      127,
		MinArea:    50,
	}
}

// Extract binarizes the buffer and returns one primitive per external contour
// whose area reaches opts.MinArea. Degenerate contours are skipped silently.
func Extract(buf Buffer, opts Options) ([]Primitive, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	src, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC4, buf.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap pixel buffer: %w", err)
	}
	defer src.Close()

	binary, err := Binarize(src, opts)
	if err != nil {
		return nil, err
	}
	defer binary.Close()

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	logger.Debug("shape: %d external contours in %dx%d image", contours.Size(), buf.Width, buf.Height)

	var prims []Primitive
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area < opts.MinArea {
			continue
		}

		rect := gocv.BoundingRect(contour)
		bounds := geometry.NewRect(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))

		points := make([]geometry.Point2D, 0, contour.Size())
		for j := 0; j < contour.Size(); j++ {
			pt := contour.At(j)
			points = append(points, geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)})
		}

		prim, ok := NewPrimitive(i, points, area, gocv.ArcLength(contour, true), bounds)
		if !ok {
			logger.Debug("shape: contour %d is degenerate, skipped", i)
			continue
		}
		prims = append(prims, prim)
	}

	logger.Info("shape: %d primitives above area floor %.0f", len(prims), opts.MinArea)
	return prims, nil
}

// Binarize converts a 4-channel image to a single-channel binary mask:
// grayscale, optional Gaussian blur, then the configured threshold.
// The caller owns the returned Mat.
func Binarize(src gocv.Mat, opts Options) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), ErrEmptyImage
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray)

	if opts.BlurKernel > 1 {
		k := opts.BlurKernel | 1
		gocv.GaussianBlur(gray, &gray, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)
	}

	thresholdType := gocv.ThresholdBinary
	if opts.Invert {
		thresholdType = gocv.ThresholdBinaryInv
	}

	binary := gocv.NewMat()
	switch opts.Mode {
	case ThresholdAdaptive, "":
		block := opts.BlockSize | 1
		if block < 3 {
			block = 3
		}
		gocv.AdaptiveThreshold(gray, &binary, 255, gocv.AdaptiveThresholdGaussian, thresholdType, block, float32(opts.C))
	case ThresholdFixed:
		gocv.Threshold(gray, &binary, float32(opts.Level), 255, thresholdType)
	case ThresholdOtsu:
		gocv.Threshold(gray, &binary, 0, 255, thresholdType|gocv.ThresholdOtsu)
	default:
		binary.Close()
		return gocv.NewMat(), fmt.Errorf("unknown threshold mode %q", opts.Mode)
	}

	return binary, nil
}
