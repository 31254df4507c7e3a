package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

type sample struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "doc.json")

	in := sample{Name: "Latvia", Score: 0.62}
	require.NoError(t, jsonstore.Save(path, in))

	var out sample
	require.NoError(t, jsonstore.Load(path, &out))
	assert.Equal(t, in, out)
}

func TestSave_ReplacesExistingContent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "doc.json")

	require.NoError(t, jsonstore.Save(path, sample{Name: "first"}))
	require.NoError(t, jsonstore.Save(path, sample{Name: "second"}))

	var out sample
	require.NoError(t, jsonstore.Load(path, &out))
	assert.Equal(t, "second", out.Name)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, jsonstore.Save(filepath.Join(dir, "doc.json"), sample{Name: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestLoad_MissingFileIsNotFound(t *testing.T) {
	t.Parallel()
	var out sample
	err := jsonstore.Load(filepath.Join(t.TempDir(), "absent.json"), &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoad_MalformedJSONFails(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var out sample
	err := jsonstore.Load(path, &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSerialization))
}

func TestExists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	assert.False(t, jsonstore.Exists(path))
	require.NoError(t, jsonstore.Save(path, sample{}))
	assert.True(t, jsonstore.Exists(path))
	assert.False(t, jsonstore.Exists(dir))
}
