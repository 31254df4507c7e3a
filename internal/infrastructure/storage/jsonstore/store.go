// Package jsonstore implements atomic JSON document persistence on the local
// filesystem.  Files are written to a temporary sibling and renamed into
// place so that readers never observe a partially-written document, even if
// the process crashes mid-write.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// Save marshals v as indented JSON and atomically writes it to path.
// Parent directories are created as needed.  The write is atomic with
// respect to concurrent readers of path: they see either the previous
// content or the new content, never a mixture.
func Save(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal document")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to create directory").
			WithDetail(dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to close temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to rename temp file").
			WithDetail(path)
	}
	return nil
}

// Load reads the JSON document at path and unmarshals it into v.
// A missing file returns an error satisfying errors.IsNotFound.
func Load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "document does not exist").
				WithDetail(path)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeStoreReadFailed, "failed to read document").
			WithDetail(path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to unmarshal document").
			WithDetail(path)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
