package ingest

import "strings"

// Chunker splits cleaned document text into overlapping chunks. Splits land
// on line boundaries so a markdown section heading is never cut mid-line;
// the overlap carries trailing lines of one chunk into the next so that a
// fact straddling a boundary stays retrievable.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a Chunker. A non-positive size falls back to 3000
// characters; the overlap is clamped below the size.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 3000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split divides text into chunks of at most the configured size. A single
// line longer than the size becomes its own oversized chunk rather than
// being truncated.
func (c *Chunker) Split(text string) []string {
	if len(text) <= c.size {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	lines := strings.Split(text, "\n")
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = overlapTail(current, c.overlap)
		currentLen = 0
		for _, l := range current {
			currentLen += len(l) + 1
		}
	}

	for _, line := range lines {
		lineLen := len(line) + 1
		if currentLen+lineLen > c.size && len(current) > 0 {
			flush()
		}
		current = append(current, line)
		currentLen += lineLen
	}
	if len(current) > 0 {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// overlapTail returns the trailing lines of the flushed chunk that fit the
// overlap budget, to seed the next chunk.
func overlapTail(lines []string, overlap int) []string {
	if overlap <= 0 {
		return nil
	}
	used := 0
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		l := len(lines[i]) + 1
		if used+l > overlap {
			break
		}
		used += l
		start = i
	}
	if start == len(lines) {
		return nil
	}
	tail := make([]string, len(lines)-start)
	copy(tail, lines[start:])
	return tail
}
