package model

// MaxEmbedInputLength caps the text submitted to the embedding
// provider. Longer input is silently truncated to bound provider cost
// and latency.
const MaxEmbedInputLength = 10000

// Embedder produces a fixed-dimension embedding vector for a text.
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// TruncateForEmbedding clips text to MaxEmbedInputLength runes.
func TruncateForEmbedding(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxEmbedInputLength {
		return text
	}
	return string(runes[:MaxEmbedInputLength])
}
