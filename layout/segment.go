package layout

import "strings"

// Slide is one paginated unit of wrapped narration: up to maxLines lines
// whose rendered width each fits the pixel budget.
type Slide struct {
	Index int
	Lines []string
}

// Text joins the slide's lines with newlines, the form handed to the
// synthesizer and drawn by the renderer.
func (s Slide) Text() string { return strings.Join(s.Lines, "\n") }

// WrapLines splits text into lines whose measured width stays within
// maxWidth. Greedy word wrap: words are appended (each with a trailing
// space) until the next word would overflow, then the line is closed at the
// last word boundary. A single word wider than the budget still gets its
// own line, so the loop always advances.
func WrapLines(text string, m Metrics, maxWidth float64) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""
	for _, w := range words {
		candidate := current + w + " "
		if m.Width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current == "" {
			// oversized word at line start: place it alone
			lines = append(lines, w)
			continue
		}
		lines = append(lines, strings.TrimRight(current, " "))
		if m.Width(w+" ") <= maxWidth {
			current = w + " "
		} else {
			lines = append(lines, w)
			current = ""
		}
	}
	if current != "" {
		lines = append(lines, strings.TrimRight(current, " "))
	}
	return lines
}

// Segment wraps narration into lines and paginates them into slides of at
// most maxLines lines each. Every slide except possibly the last is full;
// a trailing partial slide is flushed as-is. Empty narration yields no
// slides, which callers must treat as a fatal input error.
func Segment(text string, m Metrics, maxWidth float64, maxLines int) []Slide {
	lines := WrapLines(text, m, maxWidth)
	var slides []Slide
	for start := 0; start < len(lines); start += maxLines {
		end := start + maxLines
		if end > len(lines) {
			end = len(lines)
		}
		slides = append(slides, Slide{Index: len(slides), Lines: lines[start:end]})
	}
	return slides
}
