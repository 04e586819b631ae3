package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrSynthesis marks a failed speech-generation call. There is no fallback
// audio, so the enclosing product fails.
var ErrSynthesis = errors.New("speech synthesis failed")

// Asset is one slide's synthesized narration: the audio file on disk plus
// its decoded duration. The duration is authoritative for clip timing.
type Asset struct {
	Path     string
	Duration float64
}

// Synthesizer converts one slide's text into an audio asset.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) (Asset, error)
}

// DurationFunc reports a media file's duration in seconds.
type DurationFunc func(path string) (float64, error)

// maxChunkChars bounds one request to the TTS endpoint; longer slide text
// is split at word boundaries and the MP3 responses appended in order.
const maxChunkChars = 200

// GoogleTTS synthesizes speech through the public Google Translate TTS
// endpoint, the same voice the original tooling used.
type GoogleTTS struct {
	Lang     string
	Endpoint string // override for tests; default endpoint when empty
	Client   *http.Client
	Probe    DurationFunc
}

// NewGoogleTTS builds a synthesizer for the given language. probe measures
// the written file's duration (normally video.ProbeDuration).
func NewGoogleTTS(lang string, probe DurationFunc) *GoogleTTS {
	return &GoogleTTS{
		Lang:   lang,
		Client: &http.Client{Timeout: 60 * time.Second},
		Probe:  probe,
	}
}

// Synthesize normalizes the slide text for speech, fetches the spoken audio,
// writes it to outPath, and returns the asset with its probed duration.
func (g *GoogleTTS) Synthesize(ctx context.Context, text, outPath string) (Asset, error) {
	voiceText := NormalizeForSpeech(text)

	out, err := os.Create(outPath)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: create %s: %v", ErrSynthesis, outPath, err)
	}
	defer out.Close()

	for _, chunk := range splitChunks(voiceText, maxChunkChars) {
		if err := g.fetchChunk(ctx, chunk, out); err != nil {
			return Asset{}, err
		}
	}

	dur, err := g.Probe(outPath)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: probe %s: %v", ErrSynthesis, outPath, err)
	}
	if dur <= 0 {
		return Asset{}, fmt.Errorf("%w: zero-length audio for %q", ErrSynthesis, text)
	}
	return Asset{Path: outPath, Duration: dur}, nil
}

func (g *GoogleTTS) fetchChunk(ctx context.Context, chunk string, out io.Writer) error {
	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = "https://translate.google.com/translate_tts"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.Lang)
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tts endpoint returned status %d", ErrSynthesis, resp.StatusCode)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: write audio: %v", ErrSynthesis, err)
	}
	return nil
}

// splitChunks breaks text into pieces of at most limit characters, splitting
// only at word boundaries. MP3 frames concatenate cleanly, so chunk
// responses are appended to one file.
func splitChunks(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > limit {
			chunks = append(chunks, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(chunks, current)
}
