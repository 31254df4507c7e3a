package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Store reads processed-content documents from the filesystem layout
// <root>/<source_type>/<source_name>/<file>.json.  It is safe for concurrent
// use; all state is immutable after construction.
type Store struct {
	root   string
	logger logging.Logger
}

// NewStore constructs a Store rooted at root.  The directory does not need
// to exist yet; Recent simply returns no documents until content arrives.
func NewStore(root string, logger logging.Logger) *Store {
	return &Store{root: root, logger: logger.Named("content")}
}

// Root returns the directory the store scans.
func (s *Store) Root() string {
	return s.root
}

// Recent returns documents whose files were modified within window of now,
// up to maxDocs documents.  Source-type buckets are scanned in the fixed
// order of common.AllSourceTypes; within a source the newest files (by
// descending filename, which sorts timestamped names newest-first) are
// taken first.  Unreadable or malformed files are logged and skipped so a
// single bad drop never blocks a cycle.
func (s *Store) Recent(window time.Duration, maxDocs int) ([]Document, error) {
	cutoff := time.Now().Add(-window)
	var docs []Document

	for _, sourceType := range common.AllSourceTypes {
		if len(docs) >= maxDocs {
			break
		}
		typeDir := filepath.Join(s.root, string(sourceType))
		sources, err := os.ReadDir(typeDir)
		if err != nil {
			// Absent buckets are normal before the first ingestion run.
			continue
		}

		for _, src := range sources {
			if !src.IsDir() || len(docs) >= maxDocs {
				continue
			}
			srcDir := filepath.Join(typeDir, src.Name())
			files, err := os.ReadDir(srcDir)
			if err != nil {
				s.logger.Error("failed to read source directory",
					logging.String("dir", srcDir), logging.Err(err))
				continue
			}

			names := make([]string, 0, len(files))
			for _, f := range files {
				if !f.IsDir() && strings.HasSuffix(f.Name(), ".json") {
					names = append(names, f.Name())
				}
			}
			sort.Sort(sort.Reverse(sort.StringSlice(names)))

			for _, name := range names {
				if len(docs) >= maxDocs {
					break
				}
				path := filepath.Join(srcDir, name)
				info, err := os.Stat(path)
				if err != nil || info.ModTime().Before(cutoff) {
					continue
				}
				doc, err := s.readDocument(path)
				if err != nil {
					s.logger.Error("skipping unreadable document",
						logging.String("path", path), logging.Err(err))
					continue
				}
				docs = append(docs, doc)
			}
		}
	}

	return docs, nil
}

func (s *Store) readDocument(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, apperrors.Wrap(err, apperrors.ErrCodeContentUnreadable,
			"failed to read content document").WithDetail(path)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, apperrors.Wrap(err, apperrors.ErrCodeContentMalformed,
			"failed to decode content document").WithDetail(path)
	}
	return doc, nil
}
