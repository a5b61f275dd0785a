package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/pubsearch/package-search-engine/internal/errors"
	"github.com/pubsearch/package-search-engine/internal/persistence"
	"github.com/pubsearch/package-search-engine/model"
)

// AddPackagesHandler ingests a batch of package documents. Re-sent
// packages replace their previous index entries.
// Request Body: []model.PackageDocument
func (api *API) AddPackagesHandler(c *gin.Context) {
	var docs []*model.PackageDocument
	if err := c.ShouldBindJSON(&docs); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	result := &ValidationResult{Valid: true}
	for i, doc := range docs {
		if doc == nil || doc.Package == "" {
			result.AddError("package", "Document at position "+strconv.Itoa(i)+" has no package name")
		}
	}
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.index.AddPackages(docs); err != nil {
		SendIndexingError(c, "add packages", err)
		return
	}
	api.updateIndexGauges()

	c.JSON(http.StatusOK, gin.H{"message": "Indexed", "count": len(docs)})
}

// RemovePackageHandler retracts one package from the index.
func (api *API) RemovePackageHandler(c *gin.Context) {
	pkg := c.Param("package")
	if result := ValidatePackageName(pkg); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.index.RemovePackage(pkg); err != nil {
		if errors.Is(err, internalErrors.ErrPackageNotFound) {
			SendPackageNotFoundError(c, pkg)
			return
		}
		SendIndexingError(c, "remove package", err)
		return
	}
	api.updateIndexGauges()

	c.JSON(http.StatusOK, gin.H{"message": "Package '" + pkg + "' removed"})
}

// MarkReadyHandler completes the index build: the corpus is considered
// loaded and the index starts answering queries.
func (api *API) MarkReadyHandler(c *gin.Context) {
	api.index.MarkReady()
	c.JSON(http.StatusOK, api.index.IndexInfo())
}

// SaveSnapshotHandler persists the current document corpus for warm
// restarts. The snapshot blob is opaque to the search core.
func (api *API) SaveSnapshotHandler(c *gin.Context) {
	if api.snapshotPath == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "No snapshot path configured")
		return
	}
	if !api.index.IndexInfo().IsReady {
		// Snapshotting a half-loaded corpus would bake the partial state
		// into the next warm start.
		SendError(c, http.StatusConflict, ErrorCodeInvalidRequest, internalErrors.ErrIndexNotReady.Error())
		return
	}
	docs := api.index.Documents()
	if err := persistence.SaveSnapshot(api.snapshotPath, docs); err != nil {
		SendPersistenceError(c, "save snapshot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot saved", "count": len(docs)})
}

func (api *API) updateIndexGauges() {
	if api.metrics == nil {
		return
	}
	info := api.index.IndexInfo()
	api.metrics.IndexedPackages.Set(float64(info.PackageCount))
	descr, readme, apiSymbols := api.index.TokenCounts()
	api.metrics.IndexedTokens.WithLabelValues("description").Set(float64(descr))
	api.metrics.IndexedTokens.WithLabelValues("readme").Set(float64(readme))
	api.metrics.IndexedTokens.WithLabelValues("api_symbols").Set(float64(apiSymbols))
}
