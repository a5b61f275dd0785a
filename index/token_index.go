// Package index provides the inverted token index and the trigram-based
// package name index that back the in-memory package search.
package index

import (
	"github.com/pubsearch/package-search-engine/internal/score"
	"github.com/pubsearch/package-search-engine/internal/tokenizer"
)

// TokenIndex is an inverted index mapping tokens to the documents that
// contain them, with a cached total token weight per document for score
// normalization. It has no internal locking: the owning package index
// serializes writers and guards readers.
type TokenIndex struct {
	inverseIDs map[string]map[string]struct{}
	docWeights map[string]float64
}

// NewTokenIndex creates an empty TokenIndex.
func NewTokenIndex() *TokenIndex {
	return &TokenIndex{
		inverseIDs: make(map[string]map[string]struct{}),
		docWeights: make(map[string]float64),
	}
}

// Add tokenizes text and registers docID under every resulting token.
// Empty text is a no-op.
func (ti *TokenIndex) Add(docID, text string) {
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return
	}
	total := 0.0
	for token, weight := range tokens {
		ids, ok := ti.inverseIDs[token]
		if !ok {
			ids = make(map[string]struct{})
			ti.inverseIDs[token] = ids
		}
		ids[docID] = struct{}{}
		total += weight
	}
	ti.docWeights[docID] = total
}

// Remove retracts docID from every posting set, pruning tokens whose set
// becomes empty. Removing a non-indexed id is a safe no-op.
func (ti *TokenIndex) Remove(docID string) {
	if _, ok := ti.docWeights[docID]; !ok {
		return
	}
	for token, ids := range ti.inverseIDs {
		delete(ids, docID)
		if len(ids) == 0 {
			delete(ti.inverseIDs, token)
		}
	}
	delete(ti.docWeights, docID)
}

// TokenCount returns the number of distinct tokens currently indexed, a
// memory-pressure signal for diagnostics.
func (ti *TokenIndex) TokenCount() int {
	return len(ti.inverseIDs)
}

// SearchWords scores the documents matching every query word, combining
// the per-word scores over the key intersection. The optional limitToIDs
// set restricts candidates before scoring, which lets multi-word queries
// narrow progressively. The weight factor scales the final values.
func (ti *TokenIndex) SearchWords(words []string, weight float64, limitToIDs map[string]struct{}) score.Score {
	scores := make([]score.Score, 0, len(words))
	for _, word := range words {
		scores = append(scores, ti.searchWord(word, weight, limitToIDs))
	}
	return score.Multiply(scores...)
}

func (ti *TokenIndex) searchWord(word string, weight float64, limitToIDs map[string]struct{}) score.Score {
	result := score.New()
	tokens := tokenizer.TokenizeQuery(word)
	queryTotal := 0.0
	for _, w := range tokens {
		queryTotal += w
	}
	if queryTotal == 0 {
		return result
	}
	matched := make(map[string]float64)
	for token, tokenWeight := range tokens {
		ids, ok := ti.inverseIDs[token]
		if !ok {
			continue
		}
		for id := range ids {
			if limitToIDs != nil {
				if _, ok := limitToIDs[id]; !ok {
					continue
				}
			}
			matched[id] += tokenWeight
		}
	}
	// Dual normalization: reward both the coverage of the document's
	// text and the coverage of the query tokens.
	for id, m := range matched {
		docTotal := ti.docWeights[id]
		if docTotal <= 0 {
			continue
		}
		result[id] = (m / docTotal) * (m / queryTotal) * 100 * weight
	}
	return result
}
