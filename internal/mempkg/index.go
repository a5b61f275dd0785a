// Package mempkg implements the in-memory package index: it owns the
// full set of indexed package documents and composes the token indices
// and the package name index to answer structured search queries.
package mempkg

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pubsearch/package-search-engine/index"
	"github.com/pubsearch/package-search-engine/internal/errors"
	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

const (
	// defaultTextMatchBudget is the per-query wall-clock budget for text
	// search. It is a soft deadline checked between expensive sub-steps,
	// not a hard preemption.
	defaultTextMatchBudget = 500 * time.Millisecond

	defaultLimit = 10

	// maxApiPageRefs caps the API documentation page references attached
	// to a single package hit.
	maxApiPageRefs = 2

	descriptionWeight = 0.90
	readmeWeight      = 0.75
	apiSymbolWeight   = 0.80
)

// apiPageSeparator joins a package name and a page path into the
// document id used by the API symbol index.
const apiPageSeparator = "::"

// InMemoryPackageIndex indexes package documents for search. Writes
// (AddPackage, RemovePackage, MarkReady) must be serialized by the
// caller; concurrent reads are guarded by the internal RWMutex.
type InMemoryPackageIndex struct {
	mu sync.RWMutex

	documents map[string]*model.PackageDocument

	descrIndex     *index.TokenIndex
	readmeIndex    *index.TokenIndex
	apiSymbolIndex *index.TokenIndex
	nameIndex      *index.PackageNameIndex

	// apiPageIDs remembers the page document ids registered per package
	// so they can be retracted before a re-add.
	apiPageIDs map[string][]string

	ready       bool
	lastUpdated time.Time

	createdOrdered    []string
	updatedOrdered    []string
	popularityOrdered []string
	likesOrdered      []string
	pointsOrdered     []string

	textMatchBudget time.Duration
}

// Option configures an InMemoryPackageIndex.
type Option func(*InMemoryPackageIndex)

// WithTextMatchBudget overrides the default 500ms text search budget.
func WithTextMatchBudget(budget time.Duration) Option {
	return func(x *InMemoryPackageIndex) {
		if budget > 0 {
			x.textMatchBudget = budget
		}
	}
}

// NewInMemoryPackageIndex creates an empty, not-yet-ready index.
func NewInMemoryPackageIndex(opts ...Option) *InMemoryPackageIndex {
	x := &InMemoryPackageIndex{
		documents:       make(map[string]*model.PackageDocument),
		descrIndex:      index.NewTokenIndex(),
		readmeIndex:     index.NewTokenIndex(),
		apiSymbolIndex:  index.NewTokenIndex(),
		nameIndex:       index.NewPackageNameIndex(),
		apiPageIDs:      make(map[string][]string),
		textMatchBudget: defaultTextMatchBudget,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// AddPackage indexes or re-indexes a single document.
func (x *InMemoryPackageIndex) AddPackage(doc *model.PackageDocument) error {
	return x.AddPackages([]*model.PackageDocument{doc})
}

// AddPackages indexes or re-indexes a batch of documents. Any previous
// contribution under the same package name is retracted first, so no
// stale postings survive a replace. The batch is validated up front and
// rejected as a whole when any document lacks a package name.
func (x *InMemoryPackageIndex) AddPackages(docs []*model.PackageDocument) error {
	for _, doc := range docs {
		if doc == nil || doc.Package == "" {
			return errors.NewValidationError("package", "package name is required")
		}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, doc := range docs {
		x.addPackageLocked(doc)
	}
	x.updateLikeScoresLocked()
	if x.ready {
		x.updateSortOrdersLocked()
	}
	return nil
}

// RemovePackage retracts all contributions of the named package.
func (x *InMemoryPackageIndex) RemovePackage(name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.documents[name]; !ok {
		return errors.NewPackageNotFoundError(name)
	}
	x.removePackageLocked(name)
	if x.ready {
		x.updateSortOrdersLocked()
	}
	return nil
}

// MarkReady transitions the index from NotReady to Ready (one-way),
// freezes the lastUpdated timestamp and precomputes the non-text sort
// orders.
func (x *InMemoryPackageIndex) MarkReady() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ready = true
	x.lastUpdated = time.Now().UTC()
	x.updateSortOrdersLocked()
}

// IndexInfo reports the operational state of the index.
func (x *InMemoryPackageIndex) IndexInfo() services.IndexInfo {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return services.IndexInfo{
		IsReady:      x.ready,
		PackageCount: len(x.documents),
		LastUpdated:  x.lastUpdated,
	}
}

// Documents returns a copy of the indexed document list, e.g. for
// snapshotting. The documents themselves are shared, not copied.
func (x *InMemoryPackageIndex) Documents() []*model.PackageDocument {
	x.mu.RLock()
	defer x.mu.RUnlock()
	docs := make([]*model.PackageDocument, 0, len(x.documents))
	for _, doc := range x.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Package < docs[j].Package })
	return docs
}

// TokenCounts reports the distinct token counts of the three token
// indices, a memory-pressure diagnostic.
func (x *InMemoryPackageIndex) TokenCounts() (descr, readme, apiSymbols int) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.descrIndex.TokenCount(), x.readmeIndex.TokenCount(), x.apiSymbolIndex.TokenCount()
}

func (x *InMemoryPackageIndex) addPackageLocked(doc *model.PackageDocument) {
	x.removePackageLocked(doc.Package)

	pkg := doc.Package
	x.documents[pkg] = doc
	x.nameIndex.Add(pkg)
	x.descrIndex.Add(pkg, doc.Description)
	x.readmeIndex.Add(pkg, doc.Readme)

	for _, page := range doc.ApiDocPages {
		pageID := pkg + apiPageSeparator + page.RelativePath
		x.apiSymbolIndex.Add(pageID, strings.Join(page.Symbols, " "))
		x.apiPageIDs[pkg] = append(x.apiPageIDs[pkg], pageID)
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now().UTC()
	}
}

func (x *InMemoryPackageIndex) removePackageLocked(name string) {
	if _, ok := x.documents[name]; !ok {
		return
	}
	delete(x.documents, name)
	x.nameIndex.Remove(name)
	x.descrIndex.Remove(name)
	x.readmeIndex.Remove(name)
	for _, pageID := range x.apiPageIDs[name] {
		x.apiSymbolIndex.Remove(pageID)
	}
	delete(x.apiPageIDs, name)
}

// updateLikeScoresLocked log-normalizes like counts across the whole
// corpus into [0,1]. The pass runs only when at least one document lacks
// a precomputed value, so a frozen corpus keeps stable scores.
func (x *InMemoryPackageIndex) updateLikeScoresLocked() {
	missing := false
	for _, doc := range x.documents {
		if doc.LikeScore == nil {
			missing = true
			break
		}
	}
	if !missing {
		return
	}
	maxLikes := 0
	for _, doc := range x.documents {
		if doc.LikeCount > maxLikes {
			maxLikes = doc.LikeCount
		}
	}
	denom := math.Log1p(float64(maxLikes))
	for _, doc := range x.documents {
		value := 0.0
		if denom > 0 {
			value = math.Log1p(float64(doc.LikeCount)) / denom
		}
		v := value
		doc.LikeScore = &v
	}
}

// updateSortOrdersLocked precomputes the five non-text sort orders.
// Queries later filter these stable lists down to their candidate set
// instead of re-sorting per query.
func (x *InMemoryPackageIndex) updateSortOrdersLocked() {
	names := make([]string, 0, len(x.documents))
	for name := range x.documents {
		names = append(names, name)
	}
	sort.Strings(names)

	x.createdOrdered = x.sortedByLocked(names, func(d *model.PackageDocument) float64 {
		return float64(d.Created.UnixNano())
	}, true)
	x.updatedOrdered = x.sortedByLocked(names, func(d *model.PackageDocument) float64 {
		return float64(d.Updated.UnixNano())
	}, false)
	x.popularityOrdered = x.sortedByLocked(names, func(d *model.PackageDocument) float64 {
		return d.Popularity
	}, true)
	x.likesOrdered = x.sortedByLocked(names, func(d *model.PackageDocument) float64 {
		return float64(d.LikeCount)
	}, true)
	x.pointsOrdered = x.sortedByLocked(names, func(d *model.PackageDocument) float64 {
		return float64(d.GrantedPoints)
	}, true)
}

// sortedByLocked sorts names by key descending. Every comparator except
// the updated one breaks ties by updated descending; missing updated
// values lose.
func (x *InMemoryPackageIndex) sortedByLocked(names []string, key func(*model.PackageDocument) float64, tieBreakUpdated bool) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := x.documents[ordered[i]], x.documents[ordered[j]]
		ki, kj := key(di), key(dj)
		if ki != kj {
			return ki > kj
		}
		if tieBreakUpdated && !di.Updated.Equal(dj.Updated) {
			return di.Updated.After(dj.Updated)
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}

var _ services.PackageIndex = (*InMemoryPackageIndex)(nil)
