package types

import (
	"regexp"
	"strings"
)

// ImageRef points at one product photo, either a fetchable URL or a local path.
type ImageRef struct {
	URL  string `json:"imageURL,omitempty"`
	Path string `json:"path,omitempty"`
}

// Remote reports whether the reference must be downloaded.
func (r ImageRef) Remote() bool { return r.URL != "" }

// Location returns whichever of URL/Path is set, for logging.
func (r ImageRef) Location() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Path
}

// ProductJob is the immutable input for one product's generation run.
// Narration may be pre-supplied; when empty the pipeline asks the
// transcript provider for one.
type ProductJob struct {
	ListingID   string     `json:"listing_id"`
	ProductID   string     `json:"product_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Narration   string     `json:"narration,omitempty"`
	Images      []ImageRef `json:"images"`
}

// BaseName derives the deterministic output name for this job:
// "{listing}_{product}", collapsed when the two IDs match, or a slug of
// the title when no IDs were supplied.
func (j ProductJob) BaseName() string {
	if j.ListingID == "" || j.ProductID == "" {
		return Slugify(j.Title)
	}
	if j.ListingID == j.ProductID {
		return j.ListingID
	}
	return j.ListingID + "_" + j.ProductID
}

// GenerationResult describes one product's successful outputs.
type GenerationResult struct {
	VideoPath string  `json:"video_path"`
	TitleFile string  `json:"title_file"`
	BlogFile  string  `json:"blog_file"`
	Slides    int     `json:"slides"`
	Duration  float64 `json:"duration_seconds"`
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify converts arbitrary text into a filesystem-friendly name.
func Slugify(text string) string {
	s := nonAlnum.ReplaceAllString(text, "_")
	return strings.ToLower(strings.Trim(s, "_"))
}
