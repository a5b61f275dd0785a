// Package testing provides utilities and helpers for testing the
// package search engine.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pubsearch/package-search-engine/internal/mempkg"
	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

// SampleCorpus returns a small, fixed package corpus modelled on real
// pub packages, suitable for ranking and filtering tests.
func SampleCorpus() []*model.PackageDocument {
	// Anchored to the current time so tests of "updated within N days"
	// style filters see stable relative ages.
	now := time.Now().UTC().Truncate(time.Hour)
	return []*model.PackageDocument{
		{
			Package:       "http",
			Version:       "1.2.0",
			Description:   "A composable, multi-platform, Future-based API for HTTP requests.",
			Readme:        "A composable, Future-based library for making HTTP requests.",
			Tags:          []string{"sdk:dart", "sdk:flutter", "is:null-safe", "license:bsd"},
			Created:       now.AddDate(-8, 0, 0),
			Updated:       now.AddDate(0, -1, 0),
			Popularity:    0.99,
			LikeCount:     5000,
			GrantedPoints: 140,
			MaxPoints:     140,
			Dependencies: map[string]model.DependencyType{
				"async":          model.DependencyDirect,
				"meta":           model.DependencyDirect,
				"test":           model.DependencyDev,
				"string_scanner": model.DependencyTransitive,
			},
		},
		{
			Package:       "async",
			Version:       "2.11.0",
			Description:   "Utility functions and classes related to the dart:async library.",
			Readme:        "Contains tools to work with asynchronous computations.",
			Tags:          []string{"sdk:dart", "is:null-safe", "license:bsd"},
			Created:       now.AddDate(-9, 0, 0),
			Updated:       now.AddDate(0, -3, 0),
			Popularity:    0.95,
			LikeCount:     800,
			GrantedPoints: 130,
			MaxPoints:     140,
			Dependencies: map[string]model.DependencyType{
				"collection": model.DependencyDirect,
			},
		},
		{
			Package:       "chrome_net",
			Version:       "0.1.0",
			Description:   "A set of networking libraries for Chrome apps.",
			Readme:        "A set of networking libraries that use the chrome.sockets APIs.",
			Tags:          []string{"sdk:dart", "license:mit"},
			Created:       now.AddDate(-6, 0, 0),
			Updated:       now.AddDate(-2, 0, 0),
			Popularity:    0.1,
			LikeCount:     8,
			GrantedPoints: 60,
			MaxPoints:     140,
			Dependencies: map[string]model.DependencyType{
				"http": model.DependencyDirect,
			},
		},
	}
}

// BuildReadyIndex indexes the given documents and marks the index ready.
func BuildReadyIndex(t *testing.T, docs []*model.PackageDocument, opts ...mempkg.Option) *mempkg.InMemoryPackageIndex {
	t.Helper()
	idx := mempkg.NewInMemoryPackageIndex(opts...)
	require.NoError(t, idx.AddPackages(docs))
	idx.MarkReady()
	return idx
}

// HitPackages extracts the package names of a result's hits in order.
func HitPackages(result services.SearchResult) []string {
	names := make([]string, 0, len(result.PackageHits))
	for _, hit := range result.PackageHits {
		names = append(names, hit.Package)
	}
	return names
}
