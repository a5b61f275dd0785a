package services

import (
	"time"

	"github.com/pubsearch/package-search-engine/model"
)

// TagsPredicate is a boolean filter over a document's tag set: every
// required tag must be present and no negated tag may be present.
type TagsPredicate struct {
	RequiredTags []string `json:"required_tags,omitempty"`
	NegatedTags  []string `json:"negated_tags,omitempty"`
}

// IsEmpty reports whether the predicate filters nothing.
func (p TagsPredicate) IsEmpty() bool {
	return len(p.RequiredTags) == 0 && len(p.NegatedTags) == 0
}

// HasNegated reports whether the predicate explicitly excludes the tag.
func (p TagsPredicate) HasNegated(tag string) bool {
	for _, t := range p.NegatedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches evaluates the predicate against a document's tags.
func (p TagsPredicate) Matches(doc *model.PackageDocument) bool {
	for _, t := range p.RequiredTags {
		if !doc.HasTag(t) {
			return false
		}
	}
	for _, t := range p.NegatedTags {
		if doc.HasTag(t) {
			return false
		}
	}
	return true
}

// SearchQuery is the strongly typed query object at the core boundary.
// Parsing and validation of raw request parameters belongs to the HTTP
// layer, not here.
type SearchQuery struct {
	// Query is the free-text query string. Double-quoted segments are
	// treated as exact phrases.
	Query string `json:"query,omitempty"`

	TagsPredicate TagsPredicate `json:"tags_predicate,omitempty"`

	// PackagePrefix restricts candidates to package names starting with
	// the prefix (case-insensitive).
	PackagePrefix string `json:"package_prefix,omitempty"`

	// RefDependencies keeps only packages that depend on each listed
	// package directly or as a dev dependency.
	RefDependencies []string `json:"ref_dependencies,omitempty"`
	// AllDependencies keeps only packages that depend on each listed
	// package with any dependency kind.
	AllDependencies []string `json:"all_dependencies,omitempty"`

	MinPoints     int `json:"min_points,omitempty"`
	UpdatedInDays int `json:"updated_in_days,omitempty"`

	Order model.SearchOrder `json:"order,omitempty"`

	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`

	// IncludeSdkResults asks the combiner to merge SDK library hits into
	// the result.
	IncludeSdkResults bool `json:"include_sdk_results,omitempty"`
}

// ApiPageRef points to an API documentation page that matched the query.
type ApiPageRef struct {
	Package      string  `json:"package"`
	RelativePath string  `json:"relative_path"`
	Score        float64 `json:"score,omitempty"`
}

// PackageHit is one ranked package in a search result.
type PackageHit struct {
	Package  string       `json:"package"`
	Score    float64      `json:"score,omitempty"`
	ApiPages []ApiPageRef `json:"api_pages,omitempty"`
}

// SdkLibraryHit is a search result representing an SDK library page
// rather than a published package.
type SdkLibraryHit struct {
	Sdk         string  `json:"sdk"`
	Library     string  `json:"library"`
	Description string  `json:"description,omitempty"`
	Url         string  `json:"url,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// SearchResult is the ranked, paginated outcome of one query.
type SearchResult struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalCount int       `json:"total_count"`

	// Highlighted is set when the query text exactly matched a package
	// name; the same hit is also pinned to the front of PackageHits.
	Highlighted *PackageHit `json:"highlighted_hit,omitempty"`

	PackageHits    []PackageHit    `json:"package_hits"`
	SdkLibraryHits []SdkLibraryHit `json:"sdk_library_hits,omitempty"`

	// NotReady distinguishes "no index yet" from "zero matches".
	NotReady bool   `json:"not_ready,omitempty"`
	Message  string `json:"message,omitempty"`
}

// NotReadyResult builds the result returned for queries that arrive
// before the index is ready.
func NotReadyResult() SearchResult {
	return SearchResult{
		Timestamp:   time.Now().UTC(),
		NotReady:    true,
		Message:     "The search index is not ready yet.",
		PackageHits: []PackageHit{},
	}
}

// IndexInfo is a read-only operational snapshot of the index.
type IndexInfo struct {
	IsReady      bool      `json:"is_ready"`
	PackageCount int       `json:"package_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

// DocumentIndexer defines the write side of the package index. Calls must
// be serialized by the caller; the index guards reads internally.
type DocumentIndexer interface {
	AddPackage(doc *model.PackageDocument) error
	AddPackages(docs []*model.PackageDocument) error
	RemovePackage(name string) error
	MarkReady()
}

// PackageSearcher defines the read side of the package index.
type PackageSearcher interface {
	Search(query SearchQuery) SearchResult
	IndexInfo() IndexInfo
}

// PackageIndex combines both sides of the index contract.
type PackageIndex interface {
	DocumentIndexer
	PackageSearcher
}
