package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/pubsearch/package-search-engine/internal/errors"
	"github.com/pubsearch/package-search-engine/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.gob")
	docs := []*model.PackageDocument{
		{
			Package:       "http",
			Version:       "1.2.0",
			Description:   "A composable, Future-based API for HTTP requests.",
			Tags:          []string{"sdk:dart"},
			Updated:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			GrantedPoints: 140,
			MaxPoints:     140,
			Dependencies: map[string]model.DependencyType{
				"async": model.DependencyDirect,
			},
			ApiDocPages: []model.ApiDocPage{
				{RelativePath: "client.html", Symbols: []string{"Client", "BaseClient"}},
			},
		},
	}

	require.NoError(t, SaveSnapshot(path, docs))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, docs[0], loaded[0])
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.gob"))
	assert.True(t, errors.Is(err, internalErrors.ErrSnapshotNotFound))
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o600))

	_, err := LoadSnapshot(path)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, internalErrors.ErrSnapshotNotFound))
}

func TestLoadSdkLibraries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dart-libraries.json")
	content := `[
		{"library": "dart:async", "description": "Asynchronous programming.", "url": "https://api.dart.dev/dart-async"},
		{"library": "dart:io", "description": "I/O support.", "url": "https://api.dart.dev/dart-io"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	docs, err := LoadSdkLibraries(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "dart:async", docs[0].Library)

	_, err = LoadSdkLibraries(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
