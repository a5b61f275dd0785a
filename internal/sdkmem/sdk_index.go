// Package sdkmem provides small in-memory indices over SDK library
// documentation pages (Dart SDK, Flutter SDK). They answer free-text
// queries with a capped list of library hits that the result combiner
// may merge into a package search result.
package sdkmem

import (
	"github.com/pubsearch/package-search-engine/index"
	"github.com/pubsearch/package-search-engine/internal/tokenizer"
	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

// Index is an immutable in-memory index over one SDK's library pages.
// Build it once at startup; concurrent reads are safe.
type Index struct {
	sdk        string
	docs       map[string]model.SdkLibraryDocument
	tokenIndex *index.TokenIndex
}

// NewIndex indexes the given SDK library documents under the sdk label
// (e.g. "dart", "flutter").
func NewIndex(sdk string, docs []model.SdkLibraryDocument) *Index {
	idx := &Index{
		sdk:        sdk,
		docs:       make(map[string]model.SdkLibraryDocument, len(docs)),
		tokenIndex: index.NewTokenIndex(),
	}
	for _, doc := range docs {
		if doc.Library == "" {
			continue
		}
		idx.docs[doc.Library] = doc
		idx.tokenIndex.Add(doc.Library, doc.Library+" "+doc.Description)
	}
	return idx
}

// Sdk returns the sdk label of this index.
func (idx *Index) Sdk() string {
	return idx.sdk
}

// LibraryCount returns the number of indexed libraries.
func (idx *Index) LibraryCount() int {
	return len(idx.docs)
}

// Search scores the SDK libraries against the free-text query and
// returns at most limit hits, best first. An empty query or a query
// with no matches yields an empty slice.
func (idx *Index) Search(query string, limit int) []services.SdkLibraryHit {
	words := tokenizer.SplitForIndexing(query)
	if len(words) == 0 || limit <= 0 {
		return nil
	}
	scores := idx.tokenIndex.SearchWords(words, 1.0, nil).RemoveLowValues(0.2, 0.01)
	hits := make([]services.SdkLibraryHit, 0, limit)
	for _, library := range scores.TopKeys() {
		if len(hits) == limit {
			break
		}
		doc := idx.docs[library]
		hits = append(hits, services.SdkLibraryHit{
			Sdk:         idx.sdk,
			Library:     doc.Library,
			Description: doc.Description,
			Url:         doc.Url,
			Score:       scores.Get(library),
		})
	}
	return hits
}
