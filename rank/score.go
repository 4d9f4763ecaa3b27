// Package rank scores candidate records against a query vector and
// selects a bounded, deduplicated, source-diverse subset of them.
package rank

import (
	"math"

	"docqa/types"
)

// LengthBonusCap limits how much a long chunk can be rewarded over a
// short one. The bonus is an explainable additive heuristic, not a
// learned weight: substantive chunks beat short fragments that happen
// to score high on cosine alone.
const LengthBonusCap = 0.15

// CosineSimilarity returns dot(a,b)/(|a|*|b|), and 0 when either
// vector has zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, x := range a {
		magA += float64(x) * float64(x)
	}
	for _, x := range b {
		magB += float64(x) * float64(x)
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Score computes the relevance of a candidate record for a query
// vector: cosine similarity plus min(len(content)/800, 0.15). The
// theoretical maximum is 1.15.
func Score(queryVec []float32, record types.VectorRecord) float64 {
	similarity := CosineSimilarity(queryVec, record.Embedding)

	lengthBonus := float64(len(record.Content)) / 800
	if lengthBonus > LengthBonusCap {
		lengthBonus = LengthBonusCap
	}

	return similarity + lengthBonus
}
