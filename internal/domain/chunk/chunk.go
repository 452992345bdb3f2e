// Package chunk splits raw report text into overlapping fixed-size windows,
// the unit of embedding and retrieval.
package chunk

import "strings"

// Defaults used by report ingestion.
const (
	DefaultMaxChars = 1200
	DefaultOverlap  = 200
)

// Split cuts text into consecutive windows of at most maxChars characters.
// Each window after the first starts overlap characters before the end of the
// previous one, so neighbours share up to overlap characters. Windows are
// trimmed of surrounding whitespace and empty ones are dropped. Line endings
// are normalized to LF before splitting.
//
// Split is pure and deterministic. It always terminates: the loop exits as
// soon as a window reaches the end of the text, even when overlap >= maxChars.
func Split(text string, maxChars, overlap int) []string {
	if maxChars <= 0 {
		return nil
	}

	runes := []rune(strings.ReplaceAll(text, "\r\n", "\n"))
	length := len(runes)

	var chunks []string
	start := 0
	for start < length {
		end := start + maxChars
		if end > length {
			end = length
		}
		if c := strings.TrimSpace(string(runes[start:end])); c != "" {
			chunks = append(chunks, c)
		}
		if end == length {
			break
		}
		next := end - overlap
		if next <= start {
			// Guard against overlap >= maxChars: always make forward progress.
			next = end
		}
		start = next
	}
	return chunks
}
