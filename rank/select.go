package rank

import (
	"sort"

	"github.com/google/uuid"

	"docqa/types"
)

// qualityPoolSize is how many globally top-ranked candidates join the
// selection regardless of which document they come from.
const qualityPoolSize = 6

type recordKey struct {
	documentID uuid.UUID
	chunkID    string
}

// Select picks up to limit candidates, balancing topical diversity
// across source documents against raw relevance:
//
//  1. every document contributes its own top max(2, limit/documents)
//     candidates (the balanced pool);
//  2. the global top min(6, limit) candidates join irrespective of
//     source (the quality pool);
//  3. the union is deduplicated by (document, chunk), keeping the
//     higher score, sorted by score descending and truncated to limit.
//
// The single best-scoring candidate overall is always present in the
// result: it leads the quality pool and sorts first.
func Select(candidates []types.ScoredCandidate, limit int) []types.ScoredCandidate {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	byDocument := make(map[uuid.UUID][]types.ScoredCandidate)
	for _, c := range candidates {
		byDocument[c.Record.DocumentID] = append(byDocument[c.Record.DocumentID], c)
	}

	perDocument := limit
	if len(byDocument) > 0 {
		perDocument = limit / len(byDocument)
		if perDocument < 2 {
			perDocument = 2
		}
	}

	selected := make([]types.ScoredCandidate, 0, len(candidates))
	for _, docCandidates := range byDocument {
		sortByScoreDesc(docCandidates)
		take := perDocument
		if take > len(docCandidates) {
			take = len(docCandidates)
		}
		selected = append(selected, docCandidates[:take]...)
	}

	global := make([]types.ScoredCandidate, len(candidates))
	copy(global, candidates)
	sortByScoreDesc(global)
	topN := qualityPoolSize
	if topN > limit {
		topN = limit
	}
	if topN > len(global) {
		topN = len(global)
	}
	selected = append(selected, global[:topN]...)

	unique := make(map[recordKey]types.ScoredCandidate, len(selected))
	for _, c := range selected {
		key := recordKey{c.Record.DocumentID, c.Record.ChunkID}
		if prev, ok := unique[key]; !ok || c.Score > prev.Score {
			unique[key] = c
		}
	}

	result := make([]types.ScoredCandidate, 0, len(unique))
	for _, c := range unique {
		result = append(result, c)
	}
	sortByScoreDesc(result)

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func sortByScoreDesc(candidates []types.ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
