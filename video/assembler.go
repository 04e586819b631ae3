package video

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"prodreel/config"
)

// ErrEncoding marks a failed encode or mux. No partial video is valid
// output, so the enclosing product fails.
var ErrEncoding = errors.New("video encoding failed")

// Clip pairs one rendered frame with its narration audio. Duration is the
// audio asset's duration; video and audio are never independently timed.
type Clip struct {
	FramePath string
	AudioPath string
	Duration  float64
}

// TotalDuration sums the planned clip durations. The muxed output must
// match this within one frame interval.
func TotalDuration(clips []Clip) float64 {
	var total float64
	for _, c := range clips {
		total += c.Duration
	}
	return total
}

// Encoder abstracts the assembler so pipeline tests can run without ffmpeg.
type Encoder interface {
	Assemble(clips []Clip, outPath string) error
}

// Assembler turns ordered (frame, audio) pairs into one muxed MP4: each
// frame is held for exactly its audio's duration, the per-slide clips are
// concatenated in order, and the concatenated audio rides the video track.
type Assembler struct {
	// WorkDir holds intermediate per-slide clips and the concat list.
	WorkDir string
}

// Assemble encodes each clip, then concatenates them into outPath.
func (a *Assembler) Assemble(clips []Clip, outPath string) error {
	if len(clips) == 0 {
		return fmt.Errorf("%w: no clips to assemble", ErrEncoding)
	}
	for i, c := range clips {
		if c.Duration <= 0 {
			return fmt.Errorf("%w: clip %d has non-positive duration %f", ErrEncoding, i, c.Duration)
		}
	}

	parts := make([]string, len(clips))
	for i, c := range clips {
		part := filepath.Join(a.WorkDir, fmt.Sprintf("clip_%03d.mp4", i))
		if err := a.encodeClip(c, part); err != nil {
			return err
		}
		parts[i] = part
	}

	listPath := filepath.Join(a.WorkDir, "concat.txt")
	if err := WriteConcatList(listPath, parts); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	err := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(outPath, ffmpeg.KwArgs{
			"c":        "copy",
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("%w: concat mux: %v", ErrEncoding, err)
	}
	return nil
}

// encodeClip renders one static-image clip held for exactly the audio's
// duration.
func (a *Assembler) encodeClip(c Clip, outPath string) error {
	frame := ffmpeg.Input(c.FramePath, ffmpeg.KwArgs{
		"loop":      "1",
		"framerate": strconv.Itoa(config.FrameRate),
	})
	audio := ffmpeg.Input(c.AudioPath)

	err := ffmpeg.Output([]*ffmpeg.Stream{frame, audio}, outPath, ffmpeg.KwArgs{
		"c:v":     config.VideoCodec,
		"tune":    "stillimage",
		"c:a":     config.AudioCodec,
		"b:a":     config.AudioBitrate,
		"preset":  config.VideoPreset,
		"pix_fmt": "yuv420p",
		"t":       fmt.Sprintf("%.3f", c.Duration),
	}).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("%w: clip %s: %v", ErrEncoding, c.FramePath, err)
	}
	return nil
}

// WriteConcatList writes an ffmpeg concat-demuxer list file. Single quotes
// in paths are escaped per the demuxer's quoting rules.
func WriteConcatList(path string, parts []string) error {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(p, "'", `'\''`))
		b.WriteString("'\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
