package batchinput

import (
	"strings"
	"testing"
)

func TestParseImagesJSON(t *testing.T) {
	data := []byte(`[
		{"listingId": 100, "productId": 200, "images": [
			{"imageURL": "https://cdn.example.com/a.png"},
			{"imageURL": "https://cdn.example.com/b.png"}
		]},
		{"listingId": "101", "productId": "201", "images": [
			{"imageURL": "https://cdn.example.com/c.jpg"}
		]}
	]`)

	got, err := ParseImagesJSON(data)
	if err != nil {
		t.Fatalf("ParseImagesJSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products; want 2", len(got))
	}

	// numeric and string IDs index the same way
	refs := got[ProductKey{ListingID: "100", ProductID: "200"}]
	if len(refs) != 2 || refs[0].URL != "https://cdn.example.com/a.png" {
		t.Fatalf("refs for 100/200 = %+v", refs)
	}
	if len(got[ProductKey{ListingID: "101", ProductID: "201"}]) != 1 {
		t.Fatalf("refs for 101/201 = %+v", got)
	}
}

func TestParseImagesJSONValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{
			name:    "not json",
			in:      "garbage",
			wantErr: "invalid images json",
		},
		{
			name:    "missing product id",
			in:      `[{"listingId": 100, "images": [{"imageURL": "https://x/a.png"}]}]`,
			wantErr: "missing listingId/productId",
		},
		{
			name:    "empty images",
			in:      `[{"listingId": 100, "productId": 200, "images": []}]`,
			wantErr: "at least one entry",
		},
		{
			name:    "image without url",
			in:      `[{"listingId": 100, "productId": 200, "images": [{}]}]`,
			wantErr: "missing imageURL",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseImagesJSON([]byte(tc.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v; want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseImagesJSONNamesOffendingEntry(t *testing.T) {
	_, err := ParseImagesJSON([]byte(`[{"listingId": 100, "productId": 200, "images": []}]`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "listingId=100") || !strings.Contains(err.Error(), "productId=200") {
		t.Fatalf("err = %v; want it to name the product", err)
	}
}
