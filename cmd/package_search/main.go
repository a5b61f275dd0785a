package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/pubsearch/package-search-engine/api"
	"github.com/pubsearch/package-search-engine/config"
	internalErrors "github.com/pubsearch/package-search-engine/internal/errors"
	"github.com/pubsearch/package-search-engine/internal/frontend"
	"github.com/pubsearch/package-search-engine/internal/mempkg"
	"github.com/pubsearch/package-search-engine/internal/metrics"
	"github.com/pubsearch/package-search-engine/internal/persistence"
	"github.com/pubsearch/package-search-engine/internal/sdkmem"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML config file")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		snapshot   = flag.String("snapshot", "", "Path of the document snapshot (overrides config)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Package Search Engine - in-memory package search with ranked results\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                  # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --snapshot /data/corpus.gob  # Warm start from a snapshot\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("Package Search Engine v1.0.0\n")
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		settings.Port = *port
	}
	if *snapshot != "" {
		settings.SnapshotPath = *snapshot
	}
	if problems := settings.Validate(); len(problems) > 0 {
		log.Fatalf("Invalid configuration: %v", problems)
	}

	packageIndex := mempkg.NewInMemoryPackageIndex(
		mempkg.WithTextMatchBudget(settings.TextMatchBudget.Std()),
	)

	// Warm start: rebuild the index from the last snapshot if present.
	if settings.SnapshotPath != "" {
		docs, err := persistence.LoadSnapshot(settings.SnapshotPath)
		switch {
		case errors.Is(err, internalErrors.ErrSnapshotNotFound):
			log.Printf("No snapshot at %s, starting with an empty index", settings.SnapshotPath)
		case err != nil:
			log.Fatalf("Failed to load snapshot: %v", err)
		default:
			if err := packageIndex.AddPackages(docs); err != nil {
				log.Fatalf("Failed to index snapshot documents: %v", err)
			}
			packageIndex.MarkReady()
			log.Printf("Indexed %d packages from snapshot %s", len(docs), settings.SnapshotPath)
		}
	}

	dartSdk := loadSdkIndex("dart", settings.DartSdkPath)
	flutterSdk := loadSdkIndex("flutter", settings.FlutterSdkPath)
	combiner := frontend.NewCombiner(packageIndex, dartSdk, flutterSdk)

	m := metrics.New()
	apiHandler := api.NewAPI(combiner, packageIndex, m, settings.SnapshotPath)

	router := gin.Default()
	api.SetupRoutes(router, apiHandler, settings.MaxRequestBodyBytes)

	log.Printf("Starting server on port %s...", settings.Port)
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadSdkIndex(sdk, path string) *sdkmem.Index {
	if path == "" {
		return nil
	}
	docs, err := persistence.LoadSdkLibraries(path)
	if err != nil {
		log.Printf("Warning: failed to load %s SDK libraries from %s: %v", sdk, path, err)
		return nil
	}
	idx := sdkmem.NewIndex(sdk, docs)
	log.Printf("Indexed %d %s SDK libraries", idx.LibraryCount(), sdk)
	return idx
}
