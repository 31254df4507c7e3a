package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// Watcher observes the content root for newly dropped documents and exposes
// arrivals on a channel.  Cycle schedulers use it to run a cycle as soon as
// fresh content lands instead of waiting out the full interval.
type Watcher struct {
	root    string
	logger  logging.Logger
	arrived chan string
}

// NewWatcher constructs a Watcher over root.  Arrivals are delivered on
// Arrivals(); the channel is never closed by the Watcher, and slow consumers
// drop events rather than block the filesystem notification goroutine.
func NewWatcher(root string, logger logging.Logger) *Watcher {
	return &Watcher{
		root:    root,
		logger:  logger.Named("content.watcher"),
		arrived: make(chan string, 64),
	}
}

// Arrivals returns the channel on which paths of newly written documents are
// delivered.
func (w *Watcher) Arrivals() <-chan string {
	return w.arrived
}

// Run watches the content root and all source directories beneath it until
// ctx is cancelled.  New source directories created while running are added
// to the watch set automatically.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create filesystem watcher")
	}
	defer fw.Close()

	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStoreWriteFailed, "failed to create content root").
			WithDetail(w.root)
	}
	if err := w.watchTree(fw, w.root); err != nil {
		return err
	}

	w.logger.Info("content watcher started", logging.String("root", w.root))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("content watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("filesystem watch error", logging.Err(err))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		// A new source-type or source-name directory appeared.
		if err := w.watchTree(fw, event.Name); err != nil {
			w.logger.Error("failed to watch new directory",
				logging.String("dir", event.Name), logging.Err(err))
		}
		return
	}
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}

	select {
	case w.arrived <- event.Name:
	default:
		w.logger.Warn("arrival channel full, dropping event",
			logging.String("path", event.Name))
	}
}

// watchTree adds dir and every directory beneath it to the watch set.
func (w *Watcher) watchTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtrees
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				w.logger.Warn("failed to add watch",
					logging.String("dir", path), logging.Err(err))
			}
		}
		return nil
	})
}
