package assets

// Allocate maps a slide index to a product image: images[index mod len].
// The cyclic policy guarantees every slide gets an image even when photos
// are scarcer than slides, at the cost of visible repetition. Deterministic
// on purpose: re-running segmentation plus allocation on identical input
// yields the identical mapping.
func Allocate(images []ImageAsset, slideIndex int) (ImageAsset, error) {
	if len(images) == 0 {
		return ImageAsset{}, ErrNoImages
	}
	return images[slideIndex%len(images)], nil
}
