package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "compound word splits",
			in:   "an eco-friendly bottle",
			want: "an eco friendly bottle",
		},
		{
			name: "numeric range keeps dash",
			in:   "sizes 12-34 in stock",
			want: "sizes 12 dash 34 in stock",
		},
		{
			name: "mixed tokens",
			in:   "eco-friendly model 12-34",
			want: "eco friendly model 12 dash 34",
		},
		{
			name: "letter-digit compound splits",
			in:   "the SKU-123 variant",
			want: "the SKU 123 variant",
		},
		{
			name: "no hyphens untouched",
			in:   "plain narration text",
			want: "plain narration text",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeForSpeech(tc.in); got != tc.want {
				t.Fatalf("NormalizeForSpeech(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  []string
	}{
		{
			name:  "fits in one chunk",
			in:    "short text",
			limit: 50,
			want:  []string{"short text"},
		},
		{
			name:  "splits at word boundary",
			in:    "one two three four",
			limit: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "empty yields nothing",
			in:    "   ",
			limit: 10,
			want:  nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitChunks(tc.in, tc.limit)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v; want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("chunk %d: got %q; want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestGoogleTTSSynthesize(t *testing.T) {
	var gotQueries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.Query().Get("q"))
		if r.URL.Query().Get("tl") != "en" {
			t.Errorf("tl = %q; want en", r.URL.Query().Get("tl"))
		}
		w.Write([]byte("MP3DATA"))
	}))
	defer srv.Close()

	tts := NewGoogleTTS("en", func(path string) (float64, error) { return 1.5, nil })
	tts.Endpoint = srv.URL

	outPath := filepath.Join(t.TempDir(), "slide_0.mp3")
	asset, err := tts.Synthesize(context.Background(), "an eco-friendly bottle", outPath)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if asset.Duration != 1.5 {
		t.Fatalf("duration = %v; want 1.5", asset.Duration)
	}
	if asset.Path != outPath {
		t.Fatalf("path = %q; want %q", asset.Path, outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "MP3DATA" {
		t.Fatalf("output = %q; want MP3DATA", data)
	}

	// the endpoint must receive the normalized text, not the on-screen form
	if len(gotQueries) != 1 || gotQueries[0] != "an eco friendly bottle" {
		t.Fatalf("endpoint received %v; want normalized text", gotQueries)
	}
}

func TestGoogleTTSZeroDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	tts := NewGoogleTTS("en", func(path string) (float64, error) { return 0, nil })
	tts.Endpoint = srv.URL

	_, err := tts.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "out.mp3"))
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("err = %v; want ErrSynthesis", err)
	}
}

func TestGoogleTTSBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tts := NewGoogleTTS("en", func(path string) (float64, error) { return 1, nil })
	tts.Endpoint = srv.URL

	_, err := tts.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "out.mp3"))
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("err = %v; want ErrSynthesis", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v; want status in message", err)
	}
}
