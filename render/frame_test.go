package render

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"prodreel/assets"
	"prodreel/config"
	"prodreel/layout"
)

func testRenderer() *Renderer {
	return &Renderer{
		Width:     config.CanvasWidth,
		Height:    config.CanvasHeight,
		TitleFace: basicfont.Face7x13,
		BodyFace:  basicfont.Face7x13,
		LineGap:   float64(config.LineGap),
	}
}

func solidAsset(w, h int) *assets.ImageAsset {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return &assets.ImageAsset{Img: img, Width: w, Height: h, Source: "test"}
}

func TestFrameCanvasSize(t *testing.T) {
	r := testRenderer()
	slide := layout.Slide{Index: 0, Lines: []string{"first line", "second line"}}

	frame, err := r.Frame(slide, "Product Title", solidAsset(200, 100))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	b := frame.Bounds()
	if b.Dx() != config.CanvasWidth || b.Dy() != config.CanvasHeight {
		t.Fatalf("canvas = %dx%d; want %dx%d", b.Dx(), b.Dy(), config.CanvasWidth, config.CanvasHeight)
	}
}

func TestFramePlacesImageOnRight(t *testing.T) {
	r := testRenderer()
	slide := layout.Slide{Index: 0, Lines: []string{"line"}}
	asset := solidAsset(200, 100)

	frame, err := r.Frame(slide, "Title", asset)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	// sample the center of where the photo should sit
	x := config.CanvasWidth - asset.Width - config.ImageRightMargin + asset.Width/2
	y := config.CanvasHeight / 2
	cr, cg, cb, _ := frame.At(x, y).RGBA()
	if cr>>8 != 10 || cg>>8 != 20 || cb>>8 != 30 {
		t.Fatalf("pixel at (%d,%d) = (%d,%d,%d); want the photo color", x, y, cr>>8, cg>>8, cb>>8)
	}

	// left margin stays white
	wr, wg, wb, _ := frame.At(5, 5).RGBA()
	if wr>>8 != 255 || wg>>8 != 255 || wb>>8 != 255 {
		t.Fatalf("corner pixel = (%d,%d,%d); want white background", wr>>8, wg>>8, wb>>8)
	}
}

func TestFrameNilImageFatalByDefault(t *testing.T) {
	r := testRenderer()
	slide := layout.Slide{Index: 2, Lines: []string{"line"}}

	_, err := r.Frame(slide, "Title", nil)
	if !errors.Is(err, assets.ErrImageDecode) {
		t.Fatalf("err = %v; want assets.ErrImageDecode", err)
	}
}

func TestFrameNilImageAllowed(t *testing.T) {
	r := testRenderer()
	r.AllowMissingImage = true
	slide := layout.Slide{Index: 0, Lines: []string{"line"}}

	frame, err := r.Frame(slide, "Title", nil)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if frame == nil {
		t.Fatal("frame is nil")
	}
}

func TestFrameDrawsBrandMark(t *testing.T) {
	mark := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			mark.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	r := testRenderer()
	r.BrandMark = mark

	frame, err := r.Frame(layout.Slide{Lines: []string{"line"}}, "Title", solidAsset(10, 10))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	cr, cg, cb, _ := frame.At(config.BrandMarkX+8, config.BrandMarkY+8).RGBA()
	if cr>>8 != 255 || cg>>8 != 0 || cb>>8 != 0 {
		t.Fatalf("brand mark pixel = (%d,%d,%d); want red", cr>>8, cg>>8, cb>>8)
	}
}

func TestSaveFrame(t *testing.T) {
	r := testRenderer()
	frame, err := r.Frame(layout.Slide{Lines: []string{"line"}}, "Title", solidAsset(10, 10))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame_0.png")
	if err := SaveFrame(path, frame); err != nil {
		t.Fatalf("SaveFrame: %v", err)
	}

	loaded, err := assets.LoadLocal(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b := loaded.Bounds(); b.Dx() != config.CanvasWidth {
		t.Fatalf("reloaded width = %d; want %d", b.Dx(), config.CanvasWidth)
	}
}
