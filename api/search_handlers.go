package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pubsearch/package-search-engine/model"
)

// SearchHandler answers GET /search. Query parameters:
//
//	q                free-text query; double-quoted segments are exact phrases
//	prefix           package name prefix filter
//	tag, exclude_tag repeatable tag predicate parts
//	dependency       repeatable; keep packages depending directly/dev on it
//	dependency_all   repeatable; keep packages depending on it in any way
//	min_points       minimum granted pana points
//	updated_in_days  keep packages updated within the window
//	order            top|text|created|updated|popularity|like|points
//	offset, limit    pagination
//	sdk_results      merge SDK library hits into the result
func (api *API) SearchHandler(c *gin.Context) {
	query, validation := ParseSearchQuery(c)
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	start := time.Now()
	result := api.searcher.Search(query)

	if api.metrics != nil {
		order := query.Order
		if order == "" {
			order = model.OrderTop
		}
		api.metrics.SearchQueriesTotal.WithLabelValues(string(order)).Inc()
		api.metrics.SearchLatency.Observe(time.Since(start).Seconds())
		if result.NotReady {
			api.metrics.SearchNotReady.Inc()
		}
	}

	if result.NotReady {
		// Not an error: callers must be able to distinguish "no index
		// yet" from "zero matches".
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
