package video

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns a media file's duration in seconds via ffprobe.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	return ParseProbeDuration(out)
}

// ParseProbeDuration extracts format.duration from ffprobe JSON output.
func ParseProbeDuration(probeJSON string) (float64, error) {
	var doc struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &doc); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}
	if doc.Format.Duration == "" {
		return 0, fmt.Errorf("probe output has no format.duration")
	}
	sec, err := strconv.ParseFloat(doc.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", doc.Format.Duration, err)
	}
	return sec, nil
}
