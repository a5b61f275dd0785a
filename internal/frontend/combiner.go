// Package frontend merges the primary package index results with hits
// from the SDK library indices.
package frontend

import (
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pubsearch/package-search-engine/internal/sdkmem"
	"github.com/pubsearch/package-search-engine/services"
)

const (
	// perSdkHitLimit caps the hits taken from each SDK index.
	perSdkHitLimit = 2
	// totalSdkHitLimit caps the merged SDK hit list.
	totalSdkHitLimit = 3

	flutterSdkTag = "sdk:flutter"
)

// Combiner runs the primary package search and, when requested, merges
// in Dart and Flutter SDK library hits.
type Combiner struct {
	primary    services.PackageSearcher
	dartSdk    *sdkmem.Index
	flutterSdk *sdkmem.Index
}

// NewCombiner wires a combiner to the primary searcher and the two SDK
// indices. Either SDK index may be nil, in which case it is skipped.
func NewCombiner(primary services.PackageSearcher, dartSdk, flutterSdk *sdkmem.Index) *Combiner {
	return &Combiner{primary: primary, dartSdk: dartSdk, flutterSdk: flutterSdk}
}

// IndexInfo reports the primary index state.
func (c *Combiner) IndexInfo() services.IndexInfo {
	return c.primary.IndexInfo()
}

// Search runs the primary search first and then, when the query asks
// for SDK results and carries text, queries the SDK indices. Low-score
// SDK hits are suppressed: an SDK library suggestion must not outrank
// genuinely relevant package results, so anything scoring below the
// first page's minimum package score (when that minimum is positive)
// is dropped.
func (c *Combiner) Search(query services.SearchQuery) services.SearchResult {
	result := c.primary.Search(query)
	if result.NotReady || !query.IncludeSdkResults {
		return result
	}
	if strings.TrimSpace(query.Query) == "" {
		return result
	}

	var dartHits, flutterHits []services.SdkLibraryHit
	var g errgroup.Group
	if c.dartSdk != nil {
		g.Go(func() error {
			dartHits = c.dartSdk.Search(query.Query, perSdkHitLimit)
			return nil
		})
	}
	if c.flutterSdk != nil && !query.TagsPredicate.HasNegated(flutterSdkTag) {
		g.Go(func() error {
			flutterHits = c.flutterSdk.Search(query.Query, perSdkHitLimit)
			return nil
		})
	}
	// The SDK lookups never fail; the group only synchronizes them.
	_ = g.Wait()

	sdkHits := append(dartHits, flutterHits...)
	if minScore := firstPageMinScore(result.PackageHits); minScore > 0 {
		kept := sdkHits[:0]
		for _, hit := range sdkHits {
			if hit.Score >= minScore {
				kept = append(kept, hit)
			}
		}
		sdkHits = kept
	}

	sort.SliceStable(sdkHits, func(i, j int) bool {
		if sdkHits[i].Score != sdkHits[j].Score {
			return sdkHits[i].Score > sdkHits[j].Score
		}
		return sdkHits[i].Library < sdkHits[j].Library
	})
	if len(sdkHits) > totalSdkHitLimit {
		sdkHits = sdkHits[:totalSdkHitLimit]
	}
	if len(sdkHits) > 0 {
		result.SdkLibraryHits = sdkHits
	}
	return result
}

func firstPageMinScore(hits []services.PackageHit) float64 {
	min := 0.0
	for i, hit := range hits {
		if i == 0 || hit.Score < min {
			min = hit.Score
		}
	}
	return min
}

var _ services.PackageSearcher = (*Combiner)(nil)
