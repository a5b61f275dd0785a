package mempkg

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pubsearch/package-search-engine/internal/score"
	"github.com/pubsearch/package-search-engine/internal/tokenizer"
	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

// exactPhraseRegex extracts double-quoted phrases from a query string.
var exactPhraseRegex = regexp.MustCompile(`"([^"]+)"`)

// updatedInDaysSlack pads the "updated within N days" cutoff so results
// do not flicker across day transitions.
const updatedInDaysSlack = 11*time.Hour + 59*time.Minute

// textMatch carries the outcome of the free-text sub-search.
type textMatch struct {
	pkgScore score.Score
	// apiPages maps a package to its best-matching API doc pages,
	// sorted by score descending, capped to maxApiPageRefs.
	apiPages map[string][]services.ApiPageRef
}

// Search evaluates a structured query against the current index state
// and returns a ranked, paginated result. Queries against a not-ready
// index return an explicit not-ready result, never an error.
func (x *InMemoryPackageIndex) Search(query services.SearchQuery) services.SearchResult {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.ready {
		return services.NotReadyResult()
	}

	deadline := time.Now().Add(x.textMatchBudget)

	// Candidate narrowing: every filter below removes packages from the
	// set before any text scoring happens.
	candidates := make(map[string]struct{}, len(x.documents))
	for name := range x.documents {
		candidates[name] = struct{}{}
	}

	if query.PackagePrefix != "" {
		prefix := strings.ToLower(query.PackagePrefix)
		for name := range candidates {
			if !strings.HasPrefix(strings.ToLower(name), prefix) {
				delete(candidates, name)
			}
		}
	}

	if !query.TagsPredicate.IsEmpty() {
		for name := range candidates {
			if !query.TagsPredicate.Matches(x.documents[name]) {
				delete(candidates, name)
			}
		}
	}

	for _, dep := range query.AllDependencies {
		for name := range candidates {
			if _, ok := x.documents[name].Dependencies[dep]; !ok {
				delete(candidates, name)
			}
		}
	}
	for _, dep := range query.RefDependencies {
		for name := range candidates {
			kind, ok := x.documents[name].Dependencies[dep]
			if !ok || kind == model.DependencyTransitive {
				delete(candidates, name)
			}
		}
	}

	if query.MinPoints > 0 {
		for name := range candidates {
			if x.documents[name].GrantedPoints < query.MinPoints {
				delete(candidates, name)
			}
		}
	}

	if query.UpdatedInDays > 0 {
		threshold := time.Duration(query.UpdatedInDays)*24*time.Hour + updatedInDaysSlack
		cutoff := time.Now().Add(-threshold)
		for name := range candidates {
			if x.documents[name].Updated.Before(cutoff) {
				delete(candidates, name)
			}
		}
	}

	phrases := extractExactPhrases(query.Query)
	words := tokenizer.SplitForIndexing(query.Query)

	var match *textMatch
	if len(words) > 0 {
		match = x.searchTextLocked(words, phrases, candidates, deadline)
		candidates = match.pkgScore.KeySet()
	}

	ranked, scores := x.rankLocked(query.Order, candidates, match)

	// An exact package name match is pinned to the front regardless of
	// its score.
	var highlighted *services.PackageHit
	if query.Order == "" || query.Order == model.OrderTop {
		exactName := strings.TrimSpace(query.Query)
		if exactName != "" {
			if _, ok := candidates[exactName]; ok {
				ranked = moveToFront(ranked, exactName)
			}
		}
	}

	totalCount := len(ranked)

	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset > totalCount {
		offset = totalCount
	}
	end := offset + limit
	if end > totalCount {
		end = totalCount
	}

	hits := make([]services.PackageHit, 0, end-offset)
	for _, name := range ranked[offset:end] {
		hit := services.PackageHit{Package: name, Score: scores.Get(name)}
		if match != nil {
			hit.ApiPages = match.apiPages[name]
		}
		hits = append(hits, hit)
	}

	if query.Order == "" || query.Order == model.OrderTop {
		exactName := strings.TrimSpace(query.Query)
		if len(hits) > 0 && hits[0].Package == exactName {
			h := hits[0]
			highlighted = &h
		}
	}

	return services.SearchResult{
		Timestamp:   x.lastUpdated,
		TotalCount:  totalCount,
		Highlighted: highlighted,
		PackageHits: hits,
	}
}

// searchTextLocked runs the multi-word AND text search over the
// candidate set. Each word scores over the previous word's survivors,
// which short-circuits to empty once any word eliminates everything.
// The wall-clock deadline is checked between words and before the
// API-symbol sub-search; exceeding it degrades the result instead of
// failing.
func (x *InMemoryPackageIndex) searchTextLocked(words, phrases []string, candidates map[string]struct{}, deadline time.Time) *textMatch {
	match := &textMatch{apiPages: make(map[string][]services.ApiPageRef)}

	core := score.New()
	narrowed := candidates
	for i, word := range words {
		if i > 0 && time.Now().After(deadline) {
			break
		}
		wordScore := score.Max(
			x.nameIndex.SearchWord(word, narrowed),
			x.descrIndex.SearchWords([]string{word}, descriptionWeight, narrowed),
			x.readmeIndex.SearchWords([]string{word}, readmeWeight, narrowed),
		)
		if i == 0 {
			core = wordScore
		} else {
			core = score.Multiply(core, wordScore)
		}
		narrowed = core.KeySet()
		if len(narrowed) == 0 {
			break
		}
	}

	combined := core
	if time.Now().Before(deadline) {
		apiScore := x.searchApiSymbolsLocked(words, candidates, match)
		combined = score.Max(core, apiScore)
	}
	combined = combined.RemoveLowValues(0.2, 0.01)

	for _, phrase := range phrases {
		for name := range combined {
			if !x.containsPhraseLocked(name, phrase) {
				delete(combined, name)
			}
		}
	}

	// Drop page references of packages that did not survive pruning.
	for name := range match.apiPages {
		if !combined.Contains(name) {
			delete(match.apiPages, name)
		}
	}

	match.pkgScore = combined
	return match
}

// searchApiSymbolsLocked scores the API documentation pages and folds
// them into a package-level score, remembering the best pages per
// package for the result hits.
func (x *InMemoryPackageIndex) searchApiSymbolsLocked(words []string, candidates map[string]struct{}, match *textMatch) score.Score {
	pageScore := x.apiSymbolIndex.SearchWords(words, apiSymbolWeight, nil)
	pkgScore := score.New()
	for pageID, value := range pageScore {
		pkg, path, ok := strings.Cut(pageID, apiPageSeparator)
		if !ok {
			continue
		}
		if _, ok := candidates[pkg]; !ok {
			continue
		}
		if value > pkgScore[pkg] {
			pkgScore[pkg] = value
		}
		match.apiPages[pkg] = append(match.apiPages[pkg], services.ApiPageRef{
			Package:      pkg,
			RelativePath: path,
			Score:        value,
		})
	}
	for pkg, pages := range match.apiPages {
		sort.Slice(pages, func(i, j int) bool {
			if pages[i].Score != pages[j].Score {
				return pages[i].Score > pages[j].Score
			}
			return pages[i].RelativePath < pages[j].RelativePath
		})
		if len(pages) > maxApiPageRefs {
			pages = pages[:maxApiPageRefs]
		}
		match.apiPages[pkg] = pages
	}
	return pkgScore
}

// containsPhraseLocked reports whether the package id, description or
// readme of a package literally contains the phrase.
func (x *InMemoryPackageIndex) containsPhraseLocked(name, phrase string) bool {
	doc := x.documents[name]
	return strings.Contains(doc.Package, phrase) ||
		strings.Contains(doc.Description, phrase) ||
		strings.Contains(doc.Readme, phrase)
}

// rankLocked orders the candidate set according to the requested order
// and returns the ordered names plus the per-package scores attached to
// hits (empty for precomputed orders).
func (x *InMemoryPackageIndex) rankLocked(order model.SearchOrder, candidates map[string]struct{}, match *textMatch) ([]string, score.Score) {
	switch order {
	case model.OrderText:
		if match == nil {
			return x.filterOrdered(x.updatedOrdered, candidates), score.New()
		}
		return x.sortByScoreLocked(candidates, match.pkgScore), match.pkgScore
	case model.OrderCreated:
		return x.filterOrdered(x.createdOrdered, candidates), score.New()
	case model.OrderUpdated:
		return x.filterOrdered(x.updatedOrdered, candidates), score.New()
	case model.OrderPopularity:
		return x.filterOrdered(x.popularityOrdered, candidates), score.New()
	case model.OrderLike:
		return x.filterOrdered(x.likesOrdered, candidates), score.New()
	case model.OrderPoints:
		return x.filterOrdered(x.pointsOrdered, candidates), score.New()
	default: // OrderTop
		overall := score.New()
		for name := range candidates {
			doc := x.documents[name]
			likeScore := 0.0
			if doc.LikeScore != nil {
				likeScore = *doc.LikeScore
			}
			base := 0.4 + 0.6*(0.5*(doc.Popularity+likeScore)/2+0.5*doc.PointsRatio())
			if match != nil {
				overall[name] = base * match.pkgScore.Get(name)
			} else {
				overall[name] = base
			}
		}
		return x.sortByScoreLocked(candidates, overall), overall
	}
}

// sortByScoreLocked ranks candidates by score descending, breaking ties
// by updated descending and finally by name.
func (x *InMemoryPackageIndex) sortByScoreLocked(candidates map[string]struct{}, s score.Score) []string {
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := s.Get(names[i]), s.Get(names[j])
		if vi != vj {
			return vi > vj
		}
		ui, uj := x.documents[names[i]].Updated, x.documents[names[j]].Updated
		if !ui.Equal(uj) {
			return ui.After(uj)
		}
		return names[i] < names[j]
	})
	return names
}

// filterOrdered keeps the precomputed order, restricted to the dynamic
// candidate set.
func (x *InMemoryPackageIndex) filterOrdered(ordered []string, candidates map[string]struct{}) []string {
	result := make([]string, 0, len(candidates))
	for _, name := range ordered {
		if _, ok := candidates[name]; ok {
			result = append(result, name)
		}
	}
	return result
}

// extractExactPhrases returns the double-quoted phrases of a query.
func extractExactPhrases(text string) []string {
	var phrases []string
	for _, m := range exactPhraseRegex.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, m[1])
	}
	return phrases
}

func moveToFront(names []string, target string) []string {
	for i, name := range names {
		if name == target {
			copy(names[1:i+1], names[:i])
			names[0] = target
			break
		}
	}
	return names
}
