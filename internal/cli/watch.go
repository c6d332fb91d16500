package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/ui"
)

// watchDebounce batches rapid editor events into one re-run.
const watchDebounce = 400 * time.Millisecond

// watchAndAudit runs an initial audit, then re-runs it whenever the
// corpus tree changes. Validation failures are reported and watched
// through; only the fatal corpus errors end the loop.
func watchAndAudit(ctx context.Context, root string, names []string, hm *ui.HeadlessManager) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return err
	}

	runPass := func() error {
		err := auditOnce(root, names, hm)
		if err != nil && !errors.Is(err, ErrAuditFailed) {
			return err
		}
		fmt.Fprintln(os.Stderr, "watching for changes... (ctrl-c to stop)")
		return nil
	}

	if err := runPass(); err != nil {
		return err
	}

	rerun := make(chan struct{}, 1)
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isHiddenPath(root, event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			slog.Debug("corpus changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case rerun <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case <-rerun:
			if err := runPass(); err != nil {
				return err
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", watchErr)
		}
	}
}

// addWatchDirs registers the corpus root and every non-hidden
// subdirectory with the watcher.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isHiddenPath reports whether any path element below root is hidden.
func isHiddenPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
