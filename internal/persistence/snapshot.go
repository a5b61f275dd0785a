// Package persistence stores and loads the document corpus snapshot
// used for warm restarts. The snapshot is an opaque gob blob of package
// documents; the search core itself never touches storage.
package persistence

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pubsearch/package-search-engine/internal/errors"
	"github.com/pubsearch/package-search-engine/model"
)

// SaveSnapshot gob-encodes the documents to filePath, creating parent
// directories as needed.
func SaveSnapshot(filePath string, docs []*model.PackageDocument) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by configuration, not user input
	if err != nil {
		return fmt.Errorf("failed to create snapshot file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close snapshot file %s: %v\n", filePath, closeErr)
		}
	}()

	if err := gob.NewEncoder(file).Encode(docs); err != nil {
		return fmt.Errorf("failed to gob encode snapshot to %s: %w", filePath, err)
	}
	return nil
}

// LoadSnapshot decodes a snapshot written by SaveSnapshot. A missing
// file returns ErrSnapshotNotFound so callers can handle fresh starts
// gracefully.
func LoadSnapshot(filePath string) ([]*model.PackageDocument, error) {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by configuration, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close snapshot file %s: %v\n", filePath, closeErr)
		}
	}()

	var docs []*model.PackageDocument
	if err := gob.NewDecoder(file).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to gob decode snapshot from %s: %w", filePath, err)
	}
	return docs, nil
}

// LoadSdkLibraries reads a JSON file of SDK library documents used to
// build an SDK index at startup.
func LoadSdkLibraries(filePath string) ([]model.SdkLibraryDocument, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by configuration, not user input
	if err != nil {
		return nil, fmt.Errorf("failed to read SDK library file %s: %w", filePath, err)
	}
	var docs []model.SdkLibraryDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse SDK library file %s: %w", filePath, err)
	}
	return docs, nil
}
