package rank

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/types"
)

func candidate(docID uuid.UUID, chunkID string, score float64) types.ScoredCandidate {
	return types.ScoredCandidate{
		Record: types.VectorRecord{DocumentID: docID, ChunkID: chunkID},
		Score:  score,
	}
}

func TestSelectEmptyInput(t *testing.T) {
	assert.Nil(t, Select(nil, 10))
	assert.Nil(t, Select([]types.ScoredCandidate{candidate(uuid.New(), "chunk_0", 1)}, 0))
}

func TestSelectNeverExceedsLimit(t *testing.T) {
	doc := uuid.New()
	var candidates []types.ScoredCandidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidate(doc, fmt.Sprintf("chunk_%d", i), float64(i)/100))
	}

	result := Select(candidates, 5)
	assert.Len(t, result, 5)
}

func TestSelectNoDuplicates(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	candidates := []types.ScoredCandidate{
		candidate(docA, "chunk_0", 0.9),
		candidate(docA, "chunk_1", 0.8),
		candidate(docB, "chunk_0", 0.7),
		candidate(docB, "chunk_1", 0.6),
	}

	result := Select(candidates, 10)

	seen := map[string]bool{}
	for _, c := range result {
		key := c.Record.DocumentID.String() + "_" + c.Record.ChunkID
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestSelectGlobalBestAlwaysIncluded(t *testing.T) {
	best := candidate(uuid.New(), "chunk_0", 0.99)
	candidates := []types.ScoredCandidate{best}
	for i := 0; i < 20; i++ {
		candidates = append(candidates, candidate(uuid.New(), "chunk_0", 0.5+float64(i)/1000))
	}

	result := Select(candidates, 1)
	require.NotEmpty(t, result)
	assert.Equal(t, best.Record.DocumentID, result[0].Record.DocumentID)
	assert.Equal(t, best.Score, result[0].Score)
}

func TestSelectOrderedByScoreDescending(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	candidates := []types.ScoredCandidate{
		candidate(docA, "chunk_0", 0.3),
		candidate(docB, "chunk_0", 0.9),
		candidate(docA, "chunk_1", 0.6),
		candidate(docB, "chunk_1", 0.1),
	}

	result := Select(candidates, 4)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Score, result[i].Score)
	}
}

// Three documents with ten candidates each, limit 9: each document's
// balanced share is max(2, 9/3)=3, the quality pool adds the global
// top 6, and the deduplicated union is truncated back to 9.
func TestSelectBalancedAcrossDocuments(t *testing.T) {
	docs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var candidates []types.ScoredCandidate
	score := 0.90
	for i := 0; i < 10; i++ {
		for _, doc := range docs {
			candidates = append(candidates, candidate(doc, fmt.Sprintf("chunk_%d", i), score))
			score -= 0.01
		}
	}

	result := Select(candidates, 9)
	require.Len(t, result, 9)

	// global best present
	assert.Equal(t, 0.90, result[0].Score)

	// every document is represented
	perDoc := map[uuid.UUID]int{}
	for _, c := range result {
		perDoc[c.Record.DocumentID]++
	}
	for _, doc := range docs {
		assert.GreaterOrEqual(t, perDoc[doc], 3, "document underrepresented")
	}
}

// With a single source document the per-document share degenerates to
// the full limit and the balanced pool alone determines the result.
func TestSelectSingleDocumentDegenerates(t *testing.T) {
	doc := uuid.New()
	var candidates []types.ScoredCandidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, candidate(doc, fmt.Sprintf("chunk_%d", i), float64(20-i)/20))
	}

	result := Select(candidates, 8)
	require.Len(t, result, 8)
	for i, c := range result {
		assert.Equal(t, fmt.Sprintf("chunk_%d", i), c.Record.ChunkID)
	}
}

func TestSelectFewerCandidatesThanLimit(t *testing.T) {
	doc := uuid.New()
	candidates := []types.ScoredCandidate{
		candidate(doc, "chunk_0", 0.4),
		candidate(doc, "chunk_1", 0.2),
	}
	assert.Len(t, Select(candidates, 10), 2)
}
