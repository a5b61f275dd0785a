// Package score provides the sparse document-id -> weight vector used to
// compose and rank search results.
package score

import "sort"

// Score maps document ids to non-negative relevance weights. Scores are
// created per query, combined, pruned, and discarded; only relative
// ordering matters.
type Score map[string]float64

// New returns an empty Score.
func New() Score {
	return make(Score)
}

// FromValues builds a Score from an existing map without copying it.
func FromValues(values map[string]float64) Score {
	if values == nil {
		return New()
	}
	return Score(values)
}

// Get returns the value for a key, or 0 when absent.
func (s Score) Get(key string) float64 {
	return s[key]
}

// Contains reports whether the key has a value.
func (s Score) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the key set in unspecified order.
func (s Score) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// KeySet returns the keys as a set.
func (s Score) KeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for k := range s {
		set[k] = struct{}{}
	}
	return set
}

// MaxValue returns the largest value, or 0 for an empty Score.
func (s Score) MaxValue() float64 {
	max := 0.0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// MinValue returns the smallest value, or 0 for an empty Score.
func (s Score) MinValue() float64 {
	first := true
	min := 0.0
	for _, v := range s {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

// Multiply combines scores element-wise over the intersection of keys.
// A key missing from any operand is absent from the result, which gives
// AND-style composition: a missing factor eliminates the candidate.
func Multiply(scores ...Score) Score {
	if len(scores) == 0 {
		return New()
	}
	result := New()
	for key, v := range scores[0] {
		product := v
		present := true
		for _, other := range scores[1:] {
			ov, ok := other[key]
			if !ok {
				present = false
				break
			}
			product *= ov
		}
		if present {
			result[key] = product
		}
	}
	return result
}

// Max combines scores element-wise over the union of keys, keeping the
// largest value per key.
func Max(scores ...Score) Score {
	result := New()
	for _, s := range scores {
		for key, v := range s {
			if cur, ok := result[key]; !ok || v > cur {
				result[key] = v
			}
		}
	}
	return result
}

// AddValues folds other into s in place: s[k] += other[k] * weight,
// treating missing prior values as 0.
func (s Score) AddValues(other Score, weight float64) {
	for key, v := range other {
		s[key] += v * weight
	}
}

// RemoveLowValues returns a Score without the entries below
// max(fraction*maxValue, minValue). It trims the long noisy tail before
// ranking.
func (s Score) RemoveLowValues(fraction, minValue float64) Score {
	threshold := fraction * s.MaxValue()
	if minValue > threshold {
		threshold = minValue
	}
	result := make(Score, len(s))
	for key, v := range s {
		if v >= threshold {
			result[key] = v
		}
	}
	return result
}

// Project restricts the Score to the given key subset.
func (s Score) Project(keys map[string]struct{}) Score {
	result := make(Score, len(keys))
	for key := range keys {
		if v, ok := s[key]; ok {
			result[key] = v
		}
	}
	return result
}

// TopKeys returns the keys sorted by value descending; equal values are
// ordered by key ascending for deterministic output.
func (s Score) TopKeys() []string {
	keys := s.Keys()
	sort.Slice(keys, func(i, j int) bool {
		vi, vj := s[keys[i]], s[keys[j]]
		if vi != vj {
			return vi > vj
		}
		return keys[i] < keys[j]
	})
	return keys
}
