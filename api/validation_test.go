package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubsearch/package-search-engine/model"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"valid name", "http", false},
		{"valid with underscore", "riak_client", false},
		{"empty", "", true},
		{"leading whitespace", " http", true},
		{"trailing whitespace", "http ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePackageName(tt.pkg)
			assert.Equal(t, tt.wantErr, result.HasErrors())
		})
	}
}

func TestParseSearchQuery(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet,
		"/search?q=composable&prefix=ht&tag=sdk:dart&exclude_tag=is:legacy"+
			"&dependency=async&dependency_all=meta&min_points=50"+
			"&updated_in_days=30&order=updated&offset=5&limit=20&sdk_results=true", nil)

	query, result := ParseSearchQuery(c)

	require.False(t, result.HasErrors())
	assert.Equal(t, "composable", query.Query)
	assert.Equal(t, "ht", query.PackagePrefix)
	assert.Equal(t, []string{"sdk:dart"}, query.TagsPredicate.RequiredTags)
	assert.Equal(t, []string{"is:legacy"}, query.TagsPredicate.NegatedTags)
	assert.Equal(t, []string{"async"}, query.RefDependencies)
	assert.Equal(t, []string{"meta"}, query.AllDependencies)
	assert.Equal(t, 50, query.MinPoints)
	assert.Equal(t, 30, query.UpdatedInDays)
	assert.Equal(t, model.OrderUpdated, query.Order)
	assert.Equal(t, 5, query.Offset)
	assert.Equal(t, 20, query.Limit)
	assert.True(t, query.IncludeSdkResults)
}

func TestParseSearchQueryDefaults(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/search", nil)

	query, result := ParseSearchQuery(c)

	require.False(t, result.HasErrors())
	assert.Equal(t, model.OrderTop, query.Order)
	assert.Equal(t, 0, query.Offset)
	assert.Equal(t, 0, query.Limit)
	assert.False(t, query.IncludeSdkResults)
}
