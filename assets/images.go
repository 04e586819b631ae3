package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"prodreel/types"
)

var (
	// ErrNoImages means zero usable product photos: none supplied, or every
	// supplied reference failed to fetch or decode.
	ErrNoImages = errors.New("no usable product images")

	// ErrImageDecode marks one reference that could not be fetched or decoded.
	ErrImageDecode = errors.New("image decode failed")
)

// ImageAsset is a decoded, box-fitted product photo ready for compositing.
type ImageAsset struct {
	Img    image.Image
	Width  int
	Height int
	Source string
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Resolve fetches, decodes and resizes every reference. When allowSkip is
// false the first bad reference fails the product; when true bad references
// are logged and dropped. Either way, ending with zero assets is fatal.
func Resolve(ctx context.Context, refs []types.ImageRef, maxW, maxH int, allowSkip bool) ([]ImageAsset, error) {
	if len(refs) == 0 {
		return nil, ErrNoImages
	}

	var out []ImageAsset
	for _, ref := range refs {
		asset, err := resolveOne(ctx, ref, maxW, maxH)
		if err != nil {
			if !allowSkip {
				return nil, err
			}
			log.Printf("skipping image %s: %v", ref.Location(), err)
			continue
		}
		out = append(out, asset)
	}
	if len(out) == 0 {
		return nil, ErrNoImages
	}
	return out, nil
}

func resolveOne(ctx context.Context, ref types.ImageRef, maxW, maxH int) (ImageAsset, error) {
	data, err := fetch(ctx, ref)
	if err != nil {
		return ImageAsset{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, ref.Location(), err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ImageAsset{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, ref.Location(), err)
	}

	fitted := scaleToFit(img, maxW, maxH)
	b := fitted.Bounds()
	return ImageAsset{
		Img:    fitted,
		Width:  b.Dx(),
		Height: b.Dy(),
		Source: ref.Location(),
	}, nil
}

// LoadLocal decodes an image from disk, used for the shared brand mark.
func LoadLocal(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	return img, nil
}

func fetch(ctx context.Context, ref types.ImageRef) ([]byte, error) {
	if !ref.Remote() {
		return os.ReadFile(ref.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// scaleToFit shrinks img so both dimensions fit the box, preserving aspect
// ratio (scale = min(maxW/w, maxH/h)). Images already inside the box are
// returned unchanged; we never upscale product photos.
func scaleToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return img
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale >= 1 {
		return img
	}

	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
