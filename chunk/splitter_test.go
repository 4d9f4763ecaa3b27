package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyText(t *testing.T) {
	assert.Empty(t, Split("", 100, 10, 5))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	text := strings.Repeat("a", 80)
	chunks := Split(text, 200, 20, 10)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitDropsTinyFragments(t *testing.T) {
	// 49 chars after trimming is below the viable minimum.
	assert.Empty(t, Split(strings.Repeat("x", 49), 100, 10, 5))
	assert.Empty(t, Split("   \n\t  ", 100, 10, 5))
}

func TestSplitOverlapExact(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := Split(text, 100, 20, 10)

	require.GreaterOrEqual(t, len(chunks), 2)
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-20:])
		assert.True(t, strings.HasPrefix(chunks[i], tail),
			"chunk %d does not start with the previous chunk's 20-char tail", i)
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	text := strings.Repeat("0123456789", 25) // 250 chars, splits cleanly
	chunks := Split(text, 100, 0, 10)

	var rebuilt strings.Builder
	for _, c := range chunks {
		rebuilt.WriteString(c)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitRespectsMaxChunks(t *testing.T) {
	text := strings.Repeat("a", 10_000)
	chunks := Split(text, 100, 10, 7)
	assert.Len(t, chunks, 7)
}

func TestSplitZeroOverlapTerminates(t *testing.T) {
	text := strings.Repeat("b", 1000)
	chunks := Split(text, 100, 0, 100)
	assert.Len(t, chunks, 10)
}

func TestSplitClampsInvalidOverlap(t *testing.T) {
	// overlap >= chunk size would stall the cursor without the clamp
	text := strings.Repeat("c", 500)
	chunks := Split(text, 100, 100, 1000)

	assert.NotEmpty(t, chunks)
	assert.LessOrEqual(t, len(chunks), 1000)
}

func TestSplitRuneSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 30)
	chunks := Split(text, 100, 10, 10)

	for i, c := range chunks {
		assert.True(t, strings.ToValidUTF8(c, "") == c, "chunk %d has broken UTF-8", i)
	}
}
