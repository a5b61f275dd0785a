package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexInfoHandler reports the index state for operational dashboards:
// readiness, package count, last update time and token index sizes.
func (api *API) IndexInfoHandler(c *gin.Context) {
	info := api.searcher.IndexInfo()
	descr, readme, apiSymbols := api.index.TokenCounts()
	c.JSON(http.StatusOK, gin.H{
		"is_ready":      info.IsReady,
		"package_count": info.PackageCount,
		"last_updated":  info.LastUpdated,
		"token_counts": gin.H{
			"description": descr,
			"readme":      readme,
			"api_symbols": apiSymbols,
		},
	})
}
