package layout

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrFontLoad marks a missing or corrupt font resource. Nothing can be
// rendered without the font, so callers treat it as fatal for the product.
var ErrFontLoad = errors.New("font load failed")

// Metrics answers the two questions all layout math rests on: how wide a
// string renders, and how tall a line is. Implementations must be pure so
// segmentation stays deterministic and unit-testable without a font file.
type Metrics interface {
	Width(s string) float64
	LineHeight() float64
}

// FaceMetrics measures text against a parsed TrueType/OpenType face.
type FaceMetrics struct {
	face       font.Face
	lineHeight float64
}

// LoadFaceMetrics reads and parses a font file at the given point size.
func LoadFaceMetrics(path string, size float64) (*FaceMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFontLoad, path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrFontLoad, path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face %s: %v", ErrFontLoad, path, err)
	}
	return NewFaceMetrics(face), nil
}

// NewFaceMetrics wraps an already-constructed face.
func NewFaceMetrics(face font.Face) *FaceMetrics {
	m := face.Metrics()
	return &FaceMetrics{
		face:       face,
		lineHeight: fixedToFloat(m.Ascent) + fixedToFloat(m.Descent),
	}
}

// Width returns the advance of s in pixels, rendered left-to-right unwrapped.
func (f *FaceMetrics) Width(s string) float64 {
	return fixedToFloat(font.MeasureString(f.face, s))
}

// LineHeight returns ascent plus descent in pixels.
func (f *FaceMetrics) LineHeight() float64 { return f.lineHeight }

// Ascent returns the baseline offset in pixels, for top-anchored drawing.
func (f *FaceMetrics) Ascent() float64 {
	return fixedToFloat(f.face.Metrics().Ascent)
}

// Face exposes the underlying face for the renderer.
func (f *FaceMetrics) Face() font.Face { return f.face }

// fixedToFloat converts a 26.6 fixed-point value to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
