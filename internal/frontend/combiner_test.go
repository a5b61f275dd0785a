package frontend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubsearch/package-search-engine/internal/sdkmem"
	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

// fakeSearcher returns a canned result and records the last query.
type fakeSearcher struct {
	result    services.SearchResult
	lastQuery services.SearchQuery
}

func (f *fakeSearcher) Search(query services.SearchQuery) services.SearchResult {
	f.lastQuery = query
	return f.result
}

func (f *fakeSearcher) IndexInfo() services.IndexInfo {
	return services.IndexInfo{IsReady: true, PackageCount: len(f.result.PackageHits), LastUpdated: time.Now()}
}

func dartIndex() *sdkmem.Index {
	return sdkmem.NewIndex("dart", []model.SdkLibraryDocument{
		{Library: "dart:async", Description: "Support for asynchronous programming.", Url: "https://api.dart.dev/dart-async"},
		{Library: "dart:io", Description: "File, socket, HTTP and other I/O support.", Url: "https://api.dart.dev/dart-io"},
	})
}

func flutterIndex() *sdkmem.Index {
	return sdkmem.NewIndex("flutter", []model.SdkLibraryDocument{
		{Library: "widgets", Description: "The Flutter widgets framework with asynchronous builders.", Url: "https://api.flutter.dev/widgets"},
	})
}

func TestCombinerMergesSdkHits(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{
		PackageHits: []services.PackageHit{{Package: "http", Score: 0.001}},
		TotalCount:  1,
	}}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{Query: "asynchronous", IncludeSdkResults: true})

	require.NotEmpty(t, result.SdkLibraryHits)
	assert.LessOrEqual(t, len(result.SdkLibraryHits), 3)
	assert.Equal(t, "dart:async", result.SdkLibraryHits[0].Library)
	for i := 1; i < len(result.SdkLibraryHits); i++ {
		assert.GreaterOrEqual(t, result.SdkLibraryHits[i-1].Score, result.SdkLibraryHits[i].Score)
	}
	// The primary result is untouched.
	assert.Equal(t, []string{"http"}, hitNames(result.PackageHits))
}

func TestCombinerSkipsSdkWhenNotRequested(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{
		PackageHits: []services.PackageHit{{Package: "http", Score: 1.0}},
	}}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{Query: "asynchronous"})
	assert.Empty(t, result.SdkLibraryHits)
}

func TestCombinerSkipsSdkWithoutQueryText(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{}}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{Query: "  ", IncludeSdkResults: true})
	assert.Empty(t, result.SdkLibraryHits)
}

func TestCombinerPropagatesNotReady(t *testing.T) {
	primary := &fakeSearcher{result: services.NotReadyResult()}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{Query: "asynchronous", IncludeSdkResults: true})
	assert.True(t, result.NotReady)
	assert.Empty(t, result.SdkLibraryHits)
}

func TestCombinerSuppressesLowScoreSdkHits(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{
		PackageHits: []services.PackageHit{
			{Package: "http", Score: 5000},
			{Package: "dio", Score: 4000},
		},
		TotalCount: 2,
	}}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{Query: "asynchronous", IncludeSdkResults: true})

	// The weakest first-page package outscores every SDK library, so no
	// SDK suggestion is worth surfacing.
	assert.Empty(t, result.SdkLibraryHits)
}

func TestCombinerSkipsFlutterWhenExcluded(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{}}
	c := NewCombiner(primary, dartIndex(), flutterIndex())

	result := c.Search(services.SearchQuery{
		Query:             "asynchronous",
		IncludeSdkResults: true,
		TagsPredicate:     services.TagsPredicate{NegatedTags: []string{"sdk:flutter"}},
	})

	for _, hit := range result.SdkLibraryHits {
		assert.NotEqual(t, "flutter", hit.Sdk)
	}
	require.NotEmpty(t, result.SdkLibraryHits)
}

func TestCombinerNilSdkIndices(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{}}
	c := NewCombiner(primary, nil, nil)

	result := c.Search(services.SearchQuery{Query: "asynchronous", IncludeSdkResults: true})
	assert.Empty(t, result.SdkLibraryHits)
}

func TestCombinerIndexInfoPassthrough(t *testing.T) {
	primary := &fakeSearcher{result: services.SearchResult{
		PackageHits: []services.PackageHit{{Package: "http"}},
	}}
	c := NewCombiner(primary, nil, nil)

	info := c.IndexInfo()
	assert.True(t, info.IsReady)
	assert.Equal(t, 1, info.PackageCount)
}

func hitNames(hits []services.PackageHit) []string {
	names := make([]string, 0, len(hits))
	for _, hit := range hits {
		names = append(names, hit.Package)
	}
	return names
}
