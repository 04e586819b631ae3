package batchinput

import (
	"encoding/json"
	"fmt"
	"os"

	"prodreel/types"
)

// ProductKey identifies one product across the CSV and the images JSON.
type ProductKey struct {
	ListingID string
	ProductID string
}

type imagesEntry struct {
	ListingID json.Number `json:"listingId"`
	ProductID json.Number `json:"productId"`
	Images    []struct {
		ImageURL string `json:"imageURL"`
	} `json:"images"`
}

// LoadImagesJSON parses the per-product image manifest:
// [{listingId, productId, images: [{imageURL}, ...]}, ...].
// Validation errors name the offending listing/product so batch operators
// can find the bad entry.
func LoadImagesJSON(path string) (map[ProductKey][]types.ImageRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read images json: %w", err)
	}
	return ParseImagesJSON(data)
}

// ParseImagesJSON validates and indexes the manifest bytes.
func ParseImagesJSON(data []byte) (map[ProductKey][]types.ImageRef, error) {
	var entries []imagesEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid images json: %w", err)
	}

	out := make(map[ProductKey][]types.ImageRef, len(entries))
	for i, e := range entries {
		loc := fmt.Sprintf("entry #%d", i+1)
		if e.ListingID != "" || e.ProductID != "" {
			loc = fmt.Sprintf("listingId=%s, productId=%s", e.ListingID, e.ProductID)
		}
		if e.ListingID == "" || e.ProductID == "" {
			return nil, fmt.Errorf("invalid images json at %s: missing listingId/productId", loc)
		}
		if len(e.Images) == 0 {
			return nil, fmt.Errorf("invalid images json at %s: images must have at least one entry", loc)
		}

		refs := make([]types.ImageRef, 0, len(e.Images))
		for _, img := range e.Images {
			if img.ImageURL == "" {
				return nil, fmt.Errorf("invalid images json at %s: image missing imageURL", loc)
			}
			refs = append(refs, types.ImageRef{URL: img.ImageURL})
		}
		out[ProductKey{ListingID: e.ListingID.String(), ProductID: e.ProductID.String()}] = refs
	}
	return out, nil
}
