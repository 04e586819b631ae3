package video

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestTotalDuration(t *testing.T) {
	tests := []struct {
		name  string
		clips []Clip
		want  float64
	}{
		{
			name: "three slides",
			clips: []Clip{
				{Duration: 2.0},
				{Duration: 3.5},
				{Duration: 1.25},
			},
			want: 6.75,
		},
		{
			name:  "single slide",
			clips: []Clip{{Duration: 4.2}},
			want:  4.2,
		},
		{
			name:  "empty",
			clips: nil,
			want:  0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalDuration(tc.clips)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("TotalDuration = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestAssembleRejectsEmptyClips(t *testing.T) {
	a := &Assembler{WorkDir: t.TempDir()}
	err := a.Assemble(nil, filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("err = %v; want ErrEncoding", err)
	}
}

func TestAssembleRejectsNonPositiveDuration(t *testing.T) {
	a := &Assembler{WorkDir: t.TempDir()}
	clips := []Clip{
		{FramePath: "f0.png", AudioPath: "a0.mp3", Duration: 2.0},
		{FramePath: "f1.png", AudioPath: "a1.mp3", Duration: 0},
	}
	err := a.Assemble(clips, filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("err = %v; want ErrEncoding for zero-duration clip", err)
	}
}

func TestWriteConcatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concat.txt")
	parts := []string{"/tmp/clip_000.mp4", "/tmp/it's here/clip_001.mp4"}

	if err := WriteConcatList(path, parts); err != nil {
		t.Fatalf("WriteConcatList: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	want := "file '/tmp/clip_000.mp4'\n" +
		"file '/tmp/it'\\''s here/clip_001.mp4'\n"
	if string(data) != want {
		t.Fatalf("list =\n%q\nwant\n%q", data, want)
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{
			name: "valid output",
			in:   `{"format":{"duration":"6.750000"}}`,
			want: 6.75,
		},
		{
			name:    "missing duration",
			in:      `{"format":{}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			in:      "garbage",
			wantErr: true,
		},
		{
			name:    "non-numeric duration",
			in:      `{"format":{"duration":"N/A"}}`,
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseProbeDuration(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProbeDuration: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got %v; want %v", got, tc.want)
			}
		})
	}
}
