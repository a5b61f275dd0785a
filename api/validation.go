// Package api provides validation utilities for API request handling.
package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pubsearch/package-search-engine/model"
	"github.com/pubsearch/package-search-engine/services"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidatePackageName validates a package name parameter
func ValidatePackageName(pkg string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if pkg == "" {
		result.AddError("package", "Package name is required")
		return result
	}

	if strings.TrimSpace(pkg) != pkg {
		result.AddError("package", "Package name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ParseSearchQuery builds a typed services.SearchQuery from the request
// query parameters. The core only ever sees the typed form.
func ParseSearchQuery(c *gin.Context) (services.SearchQuery, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	query := services.SearchQuery{
		Query:           c.Query("q"),
		PackagePrefix:   c.Query("prefix"),
		RefDependencies: c.QueryArray("dependency"),
		AllDependencies: c.QueryArray("dependency_all"),
		TagsPredicate: services.TagsPredicate{
			RequiredTags: c.QueryArray("tag"),
			NegatedTags:  c.QueryArray("exclude_tag"),
		},
	}

	if order, err := model.ParseSearchOrder(c.Query("order")); err != nil {
		result.AddError("order", err.Error())
	} else {
		query.Order = order
	}

	query.MinPoints = parseNonNegativeInt(c, "min_points", result)
	query.UpdatedInDays = parseNonNegativeInt(c, "updated_in_days", result)
	query.Offset = parseNonNegativeInt(c, "offset", result)
	query.Limit = parseNonNegativeInt(c, "limit", result)

	if sdk := c.Query("sdk_results"); sdk != "" {
		include, err := strconv.ParseBool(sdk)
		if err != nil {
			result.AddError("sdk_results", "must be a boolean")
		}
		query.IncludeSdkResults = include
	}

	return query, result
}

func parseNonNegativeInt(c *gin.Context, name string, result *ValidationResult) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		result.AddError(name, "must be a non-negative integer")
		return 0
	}
	return value
}
