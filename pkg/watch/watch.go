// Package watch triggers recomputation when anything under the vault
// root changes.
//
// The watcher carries no payload beyond "something changed": every
// trigger re-runs the full pipeline from scratch. Filesystem events
// arrive in bursts (editors write, rename and chmod in quick
// succession), so triggers are debounced - the callback fires once a
// quiet period has passed since the last event. The callback runs on the
// watch loop's own goroutine, which serializes recomputes: overlapping
// bursts coalesce into the next run rather than interleaving against the
// shared output file.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required after the last event
// before a trigger fires.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// Ignore lists paths whose events never trigger, used for the
	// rendered output image so a run cannot retrigger itself when the
	// image lives inside the vault.
	Ignore []string

	// Logger receives watch events at debug level. Nil means
	// log.Default().
	Logger *log.Logger
}

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	ignore   map[string]struct{}
	logger   *log.Logger
	fsw      *fsnotify.Watcher
}

// New creates a watcher over the tree rooted at root. Directories that
// appear later are picked up as they are created.
func New(root string, opts Options) (*Watcher, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("watch root %s: %w", root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		debounce: opts.Debounce,
		ignore:   make(map[string]struct{}, len(opts.Ignore)),
		logger:   opts.Logger,
		fsw:      fsw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignore[abs] = struct{}{}
		}
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run blocks, invoking fn after each debounced batch of changes, until
// ctx is cancelled. Errors returned by fn are logged, not fatal: a vault
// mid-edit can be transiently unreadable and the next change will try
// again. Watcher errors end the loop.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	// A stopped timer whose channel never fires until the first event.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("vault changed", "op", event.Op.String(), "path", event.Name)
			if event.Op.Has(fsnotify.Create) {
				w.maybeAddDir(event.Name)
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.root, err)

		case <-timer.C:
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.Error("recompute failed", "err", err)
			}
		}
	}
}

// relevant filters out chmod-only noise and events on ignored paths.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return true
	}
	_, ignored := w.ignore[abs]
	return !ignored
}

// maybeAddDir starts watching name if it is a newly created directory,
// including any subtree that appeared with it.
func (w *Watcher) maybeAddDir(name string) {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(name); err != nil {
		w.logger.Warn("could not watch new directory", "path", name, "err", err)
	}
}

// addTree registers root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
