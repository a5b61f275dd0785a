// Package api wires the package search service into an HTTP surface:
// search, document feeding, snapshot handling, and health reporting.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pubsearch/package-search-engine/internal/mempkg"
	"github.com/pubsearch/package-search-engine/internal/metrics"
	"github.com/pubsearch/package-search-engine/services"
)

// API holds dependencies for API handlers: the combined searcher, the
// write side of the index, and the metric collectors.
type API struct {
	searcher     services.PackageSearcher
	index        *mempkg.InMemoryPackageIndex
	metrics      *metrics.Metrics
	snapshotPath string
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.PackageSearcher, index *mempkg.InMemoryPackageIndex, m *metrics.Metrics, snapshotPath string) *API {
	return &API{
		searcher:     searcher,
		index:        index,
		metrics:      m,
		snapshotPath: snapshotPath,
	}
}

// SetupRoutes defines all the API routes for the search service.
func SetupRoutes(router *gin.Engine, apiHandler *API, maxBodyBytes int64) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxBodyBytes))
	if apiHandler.metrics != nil {
		router.Use(MetricsMiddleware(apiHandler.metrics))
	}

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/info", apiHandler.IndexInfoHandler)

	packageRoutes := router.Group("/packages")
	{
		packageRoutes.POST("", apiHandler.AddPackagesHandler)              // Add or replace documents
		packageRoutes.DELETE("/:package", apiHandler.RemovePackageHandler) // Retract one package
	}

	router.POST("/ready", apiHandler.MarkReadyHandler)
	router.POST("/snapshot", apiHandler.SaveSnapshotHandler)
}

// HealthCheckHandler reports liveness plus the index readiness state.
func (api *API) HealthCheckHandler(c *gin.Context) {
	info := api.searcher.IndexInfo()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"is_ready":  info.IsReady,
		"timestamp": time.Now().UTC(),
	})
}
