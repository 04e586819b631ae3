package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"prodreel/assets"
	"prodreel/config"
	"prodreel/layout"
)

// Renderer composites one frame per slide on a fixed white canvas: brand
// mark top-left, title in its band, body lines vertically centered on the
// left, product photo right-aligned and vertically centered. It holds only
// read-only shared assets, so frames may be rendered in any order or in
// parallel.
type Renderer struct {
	Width  int
	Height int

	TitleFace font.Face
	BodyFace  font.Face

	// BrandMark is optional; nil draws no mark.
	BrandMark image.Image

	LineGap float64

	// AllowMissingImage renders a slide without its photo instead of
	// failing it. Kept off by default: a blank region is worse than a
	// reported failure.
	AllowMissingImage bool
}

// Frame renders the composited still for one slide. img may be nil only
// when AllowMissingImage is set.
func (r *Renderer) Frame(slide layout.Slide, title string, img *assets.ImageAsset) (image.Image, error) {
	if img == nil && !r.AllowMissingImage {
		return nil, fmt.Errorf("%w: slide %d has no image", assets.ErrImageDecode, slide.Index)
	}

	dc := gg.NewContext(r.Width, r.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if r.BrandMark != nil {
		dc.DrawImage(r.BrandMark, config.BrandMarkX, config.BrandMarkY)
	}

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(r.TitleFace)
	dc.DrawString(title, config.TextMarginX, config.TitleBandY+ascent(r.TitleFace))

	dc.SetFontFace(r.BodyFace)
	lineHeight := faceLineHeight(r.BodyFace)
	blockHeight := float64(len(slide.Lines)) * (lineHeight + r.LineGap)
	y := (float64(r.Height) - blockHeight) / 2
	for _, line := range slide.Lines {
		dc.DrawString(line, config.TextMarginX, y+ascent(r.BodyFace))
		y += lineHeight + r.LineGap
	}

	if img != nil {
		x := r.Width - img.Width - config.ImageRightMargin
		iy := (r.Height - img.Height) / 2
		dc.DrawImage(img.Img, x, iy)
	}

	return dc.Image(), nil
}

func ascent(f font.Face) float64 {
	return float64(f.Metrics().Ascent) / 64
}

func faceLineHeight(f font.Face) float64 {
	m := f.Metrics()
	return float64(m.Ascent+m.Descent) / 64
}

// SaveFrame writes a rendered frame as PNG for the encoder.
func SaveFrame(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
