package speech

import (
	"context"
	"os"
	"sync"
)

// Mock records synthesis calls and fabricates durations, for pipeline tests
// that must not hit the network.
type Mock struct {
	mu        sync.Mutex
	Texts     []string
	Durations []float64 // consumed in call order; defaults to 1s when exhausted
	// DurationFor, when set, wins over Durations; useful when calls may
	// arrive out of slide order.
	DurationFor func(text string) float64
	Err         error
	calls       int
}

func (m *Mock) Synthesize(_ context.Context, text, outPath string) (Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return Asset{}, m.Err
	}
	m.Texts = append(m.Texts, text)
	dur := 1.0
	switch {
	case m.DurationFor != nil:
		dur = m.DurationFor(text)
	case m.calls < len(m.Durations):
		dur = m.Durations[m.calls]
	}
	m.calls++
	if err := os.WriteFile(outPath, []byte{}, 0o644); err != nil {
		return Asset{}, err
	}
	return Asset{Path: outPath, Duration: dur}, nil
}

// CallCount returns how many synthesis calls were made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
