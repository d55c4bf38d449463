// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// Target is one catalog root watched for changes.
type Target struct {
	Kind types.CatalogKind
	Root string
	Exts []string
}

func (t Target) contains(path string) bool {
	rel, err := filepath.Rel(t.Root, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// Watch blocks until ctx is done, calling onChange for each target whose
// tree saw a relevant change. Events are debounced: onChange runs once per
// target after debounce has passed with no further events. Calls happen on
// the watching goroutine, one at a time, in target order.
//
// Targets whose root does not exist are logged and ignored.
func Watch(ctx context.Context, targets []Target, debounce time.Duration, logger *zap.Logger, onChange func(Target)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	var active []Target
	for _, t := range targets {
		if len(t.Exts) == 0 {
			t.Exts = DefaultExts(t.Kind)
		}
		if err := addTree(w, t.Root); err != nil {
			logger.Warn("not watching catalog root",
				zap.String("catalog", string(t.Kind)),
				zap.String("root", t.Root),
				zap.Error(err))
			continue
		}
		logger.Info("watching catalog root",
			zap.String("catalog", string(t.Kind)),
			zap.String("root", t.Root))
		active = append(active, t)
	}
	if len(active) == 0 {
		return fmt.Errorf("no catalog roots to watch")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make([]bool, len(active))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			isDir := false
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					isDir = true
					if err := addTree(w, ev.Name); err != nil {
						logger.Warn("watching new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			marked := false
			for i, t := range active {
				if !t.contains(ev.Name) {
					continue
				}
				// A removed directory can no longer be stat'ed, so every
				// remove or rename counts.
				gone := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
				if isDir || gone || matchesExt(ev.Name, t.Exts) {
					pending[i] = true
					marked = true
				}
			}
			if marked {
				logger.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				timer.Reset(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			for i, t := range active {
				if pending[i] {
					pending[i] = false
					onChange(t)
				}
			}
		}
	}
}

// addTree registers dir and every directory below it with the watcher.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
