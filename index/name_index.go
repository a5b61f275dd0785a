package index

import (
	"strings"

	"github.com/pubsearch/package-search-engine/internal/score"
)

// PackageNameIndex is a near-duplicate matcher tuned for short package
// name strings. Names are collapsed (lowercased, underscores removed)
// and matched by substring containment plus trigram overlap, which
// handles separator-free concatenations like "riakclient" without a
// general edit-distance computation.
type PackageNameIndex struct {
	collapsed map[string]string
	trigrams  map[string]map[string]struct{}
}

// NewPackageNameIndex creates an empty PackageNameIndex.
func NewPackageNameIndex() *PackageNameIndex {
	return &PackageNameIndex{
		collapsed: make(map[string]string),
		trigrams:  make(map[string]map[string]struct{}),
	}
}

// Add stores the collapsed form and trigram set of the package name.
// Re-adding an already present name is a no-op.
func (ni *PackageNameIndex) Add(pkg string) {
	if _, ok := ni.collapsed[pkg]; ok {
		return
	}
	collapsed := collapseName(pkg)
	ni.collapsed[pkg] = collapsed
	ni.trigrams[pkg] = trigramSet(collapsed)
}

// Remove retracts a package name; unknown names are a safe no-op.
func (ni *PackageNameIndex) Remove(pkg string) {
	delete(ni.collapsed, pkg)
	delete(ni.trigrams, pkg)
}

// SearchWord scores the indexed package names against one query word.
// The optional packages set restricts the candidates. Results below 50%
// of the maximum score or below the absolute floor 0.5 are dropped.
func (ni *PackageNameIndex) SearchWord(word string, packages map[string]struct{}) score.Score {
	result := score.New()
	w := word
	if len(w) > 3 && strings.HasSuffix(w, "s") {
		w = w[:len(w)-1]
	}
	w = collapseName(w)
	if w == "" {
		return result
	}
	wordTrigrams := trigramSet(w)
	for pkg, collapsed := range ni.collapsed {
		if packages != nil {
			if _, ok := packages[pkg]; !ok {
				continue
			}
		}
		if strings.Contains(collapsed, w) {
			result[pkg] = 1.0
			continue
		}
		// Short words must match by containment only.
		if len(w) <= 3 || len(wordTrigrams) == 0 {
			continue
		}
		matched := 0
		for t := range wordTrigrams {
			if _, ok := ni.trigrams[pkg][t]; ok {
				matched++
			}
		}
		if matched > 0 {
			result[pkg] = float64(matched) / float64(len(wordTrigrams))
		}
	}
	return result.RemoveLowValues(0.5, 0.5)
}

// collapseName lowercases a name and strips underscores, the form both
// stored names and query words are reduced to before comparison.
func collapseName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

func trigramSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+3 <= len(s); i++ {
		set[s[i:i+3]] = struct{}{}
	}
	return set
}
