// Package tokenizer turns raw text (package names, descriptions, readme
// content, API symbol names) into weighted index tokens: character
// n-grams, long-word prefixes, and camelCase-split fragments.
package tokenizer

import (
	"regexp"
	"strings"
)

const (
	// MinNgram and MaxNgram bound the n-gram lengths generated for every
	// word. Index-time and query-time tokenization share these knobs so
	// their token sets intersect correctly.
	MinNgram = 1
	MaxNgram = 4

	// MaxWordLength truncates pathological words before indexing.
	MaxWordLength = 80
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SplitForIndexing splits text into normalized words: lowercased, split
// on non-alphanumeric runs, truncated at MaxWordLength.
func SplitForIndexing(text string) []string {
	words := make([]string, 0)
	for _, w := range nonAlphanumericRegex.Split(strings.ToLower(text), -1) {
		if w == "" {
			continue
		}
		if len(w) > MaxWordLength {
			w = w[:MaxWordLength]
		}
		words = append(words, w)
	}
	return words
}

// TokenWeight is the relevance weight of a single token: longer tokens
// count more, with diminishing returns past MaxNgram characters.
func TokenWeight(token string) float64 {
	length := len(token)
	capped := length
	if capped > MaxNgram {
		capped = MaxNgram
	}
	return float64(length * capped)
}

// Tokenize produces the index-time token set of text, mapping each token
// to its weight. Empty text yields an empty map, never an error.
func Tokenize(text string) map[string]float64 {
	tokens := make(map[string]float64)
	if text == "" {
		return tokens
	}
	for _, raw := range nonAlphanumericRegex.Split(text, -1) {
		if raw == "" {
			continue
		}
		if len(raw) > MaxWordLength {
			raw = raw[:MaxWordLength]
		}
		word := strings.ToLower(raw)
		addWordNgrams(tokens, word)
		addAllPrefixes(tokens, word)
		// Case transitions inside the raw word get their own prefix
		// tokens, so "Queue" matches inside "DoubleLinkedQueue".
		for _, sub := range caseSplitFragments(raw) {
			add(tokens, sub)
			addAllPrefixes(tokens, sub)
		}
	}
	return tokens
}

// TokenizeQuery produces the query-time token set of a single,
// already-split query word. It uses the same n-gram range as Tokenize so
// exact and partial matches line up with the index-time tokens.
func TokenizeQuery(word string) map[string]float64 {
	tokens := make(map[string]float64)
	if word == "" {
		return tokens
	}
	if len(word) > MaxWordLength {
		word = word[:MaxWordLength]
	}
	word = strings.ToLower(word)
	addWordNgrams(tokens, word)
	addAllPrefixes(tokens, word)
	return tokens
}

// addWordNgrams adds, for each n-gram length, either the whole word
// (when the word is short enough) or every contiguous substring.
func addWordNgrams(tokens map[string]float64, word string) {
	for n := MinNgram; n <= MaxNgram; n++ {
		if len(word) <= n {
			add(tokens, word)
			continue
		}
		for i := 0; i+n <= len(word); i++ {
			add(tokens, word[i:i+n])
		}
	}
}

// addAllPrefixes adds every prefix longer than MaxNgram, including the
// full word, supporting prefix-style relevance on long tokens.
func addAllPrefixes(tokens map[string]float64, word string) {
	for i := MaxNgram + 1; i <= len(word); i++ {
		add(tokens, word[:i])
	}
}

// caseSplitFragments returns the lowercased suffixes starting at each
// lower-to-upper case transition of the raw word.
func caseSplitFragments(raw string) []string {
	var fragments []string
	for i := 1; i < len(raw); i++ {
		if isLower(raw[i-1]) && isUpper(raw[i]) {
			fragments = append(fragments, strings.ToLower(raw[i:]))
		}
	}
	return fragments
}

func add(tokens map[string]float64, token string) {
	if token == "" {
		return
	}
	if _, ok := tokens[token]; !ok {
		tokens[token] = TokenWeight(token)
	}
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
