package batchinput

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"prodreel/types"
)

var imageURLPattern = regexp.MustCompile(`(?i)\.(png|jpe?g)(\?|$)`)

// requiredColumns must all be present in the product CSV.
var requiredColumns = []string{"Listing Id", "Product Id", "Title", "Description"}

// row is one parsed CSV record keyed by trimmed header name.
type row map[string]string

// ReadJobs parses the product CSV and merges per-product image URLs from
// the images map (see LoadImagesJSON). When the map has no entry for a row,
// a CSV column whose name contains both "image" and "url" is used as a
// comma-separated fallback. Rows missing title/description or yielding no
// usable URLs are skipped with a warning, mirroring the batch policy that
// one bad row never aborts its siblings.
func ReadJobs(csvPath string, imageMap map[ProductKey][]types.ImageRef) ([]types.ProductJob, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", csvPath)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}
	urlColumn := findURLColumn(header)

	var jobs []types.ProductJob
	for _, record := range records[1:] {
		r := make(row, len(header))
		for i, v := range record {
			if i < len(header) {
				r[header[i]] = strings.TrimSpace(v)
			}
		}

		lid, pid := r["Listing Id"], r["Product Id"]
		title, desc := r["Title"], r["Description"]
		if title == "" || desc == "" {
			log.Printf("skipping %s/%s: missing title/description", lid, pid)
			continue
		}

		refs := imageMap[ProductKey{ListingID: lid, ProductID: pid}]
		if len(refs) == 0 && urlColumn != "" {
			refs = parseURLColumn(r[urlColumn])
		}
		if len(refs) == 0 {
			log.Printf("skipping %s/%s: no valid image URLs", lid, pid)
			continue
		}

		jobs = append(jobs, types.ProductJob{
			ListingID:   lid,
			ProductID:   pid,
			Title:       title,
			Description: desc,
			Images:      refs,
		})
	}
	return jobs, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

func findURLColumn(header []string) string {
	for _, h := range header {
		low := strings.ToLower(h)
		if strings.Contains(low, "image") && strings.Contains(low, "url") {
			return h
		}
	}
	return ""
}

func parseURLColumn(raw string) []types.ImageRef {
	var refs []types.ImageRef
	for _, part := range strings.Split(raw, ",") {
		u := strings.TrimSpace(part)
		if u != "" && imageURLPattern.MatchString(u) {
			refs = append(refs, types.ImageRef{URL: u})
		}
	}
	return refs
}
