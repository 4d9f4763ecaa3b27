package chunk

import "strings"

// MinChunkLength is the minimum viable chunk length after trimming
// whitespace. Shorter fragments carry negligible signal and would
// dilute retrieval, so they are dropped before anything downstream
// sees them.
const MinChunkLength = 50

// Split cuts text into a sliding window of chunks. Consecutive chunks
// overlap by chunkOverlap characters except possibly the final one,
// at most maxChunks chunks are emitted, and chunks shorter than
// MinChunkLength after trimming are dropped. Splitting operates on
// runes so multi-byte sequences are never cut in half.
func Split(text string, chunkSize, chunkOverlap, maxChunks int) []string {
	if chunkSize <= 0 || maxChunks <= 0 {
		return nil
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}

	runes := []rune(text)
	var chunks []string

	for start := 0; start < len(runes) && len(chunks) < maxChunks; {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		piece := string(runes[start:end])
		if len(strings.TrimSpace(piece)) >= MinChunkLength {
			chunks = append(chunks, piece)
		}

		if end == len(runes) {
			break
		}

		start += chunkSize - chunkOverlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}
