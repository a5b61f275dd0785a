package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pubsearch/package-search-engine/model"
)

func TestTagsPredicateMatches(t *testing.T) {
	doc := &model.PackageDocument{Tags: []string{"sdk:dart", "sdk:flutter", "license:bsd"}}

	tests := []struct {
		name string
		pred TagsPredicate
		want bool
	}{
		{"empty matches everything", TagsPredicate{}, true},
		{"required present", TagsPredicate{RequiredTags: []string{"sdk:dart"}}, true},
		{"required missing", TagsPredicate{RequiredTags: []string{"is:legacy"}}, false},
		{"negated absent", TagsPredicate{NegatedTags: []string{"is:legacy"}}, true},
		{"negated present", TagsPredicate{NegatedTags: []string{"sdk:flutter"}}, false},
		{
			"mixed",
			TagsPredicate{RequiredTags: []string{"sdk:dart"}, NegatedTags: []string{"license:mit"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(doc))
		})
	}
}

func TestTagsPredicateHelpers(t *testing.T) {
	assert.True(t, TagsPredicate{}.IsEmpty())
	assert.False(t, TagsPredicate{RequiredTags: []string{"sdk:dart"}}.IsEmpty())

	pred := TagsPredicate{NegatedTags: []string{"sdk:flutter"}}
	assert.True(t, pred.HasNegated("sdk:flutter"))
	assert.False(t, pred.HasNegated("sdk:dart"))
}

func TestNotReadyResult(t *testing.T) {
	result := NotReadyResult()
	assert.True(t, result.NotReady)
	assert.NotEmpty(t, result.Message)
	assert.NotNil(t, result.PackageHits)
	assert.Empty(t, result.PackageHits)
}
